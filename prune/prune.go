// Package prune turns clause bank literal statistics into a pruning decision
// per literal, and compresses the decisions into a quaternary filter which an
// external pruning step can ship alongside the model.
package prune

import "github.com/neurlang/quaternary"

// Decisions maps every literal to true when at least minimum clauses include it.
// Literals below the minimum are pruning candidates.
func Decisions(count []uint32, minimum uint32) map[uint32]bool {
	var d = make(map[uint32]bool, len(count))
	for k, v := range count {
		d[uint32(k)] = v >= minimum
	}
	return d
}

// Keep lists the literals included by at least minimum clauses.
func Keep(count []uint32, minimum uint32) (o []int) {
	for k, v := range count {
		if v >= minimum {
			o = append(o, k)
		}
	}
	return
}

// Filter builds the quaternary filter of the keep/prune decisions.
func Filter(count []uint32, minimum uint32) []byte {
	if len(count) == 0 {
		return nil
	}
	return []byte(quaternary.Make(Decisions(count, minimum)))
}
