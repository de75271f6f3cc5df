package main

import "runtime/pprof"
import "os"
import "os/signal"
import "syscall"

// profile records a cpu profile into filename, usable as default.pgo.
// The returned stop flushes it; an interrupt flushes it and exits.
func profile(filename string) (stop func()) {
	f, err := os.Create(filename)
	if err != nil {
		println(err.Error())
		return func() {}
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		println(err.Error())
		f.Close()
		return func() {}
	}
	done := make(chan struct{})
	stopped := make(chan struct{})
	stop = func() {
		close(done)
		<-stopped
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		var interrupted bool
		select {
		case <-sigChan:
			interrupted = true
		case <-done:
		}
		signal.Stop(sigChan)
		pprof.StopCPUProfile()
		f.Close()
		if interrupted {
			os.Exit(130)
		}
		close(stopped)
	}()
	return stop
}
