// Package main provides a demo program training a convolutional Tsetlin machine
// to detect a 2x2 diagonal motif anywhere in small noisy binary images.
// Two clause banks vote for and against the motif; every round the banks
// receive Type I and Type II feedback, and optionally Type III feedback.
package main
