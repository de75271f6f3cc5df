package clausebank

import "github.com/neurlang/convtsetlin/parallel"
import "github.com/neurlang/convtsetlin/random"

// threads resolves the worker count and makes sure every worker has scratch memory
func (b *Bank) threads(h *HyperParameters) int {
	n := h.Threads
	if n <= 0 {
		n = parallel.Threads()
	}
	if n > b.clauses {
		n = b.clauses
	}
	for len(b.workers) < n {
		b.workers = append(b.workers, b.newScratch())
	}
	return n
}

func (b *Bank) mustStreams(streams *random.Streams) {
	mustLen("streams", streams.Len(), b.clauses)
}

// TypeIFeedbackParallel is TypeIFeedback with clauses spread over h.Threads goroutines.
// Clause j draws only from streams.At(j), so the result does not depend on the thread count.
func (b *Bank) TypeIFeedbackParallel(streams *random.Streams, h *HyperParameters, clauseActive []bool,
	literalActive, xi []uint32) {
	h.mustTypeI()
	b.mustStreams(streams)
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	parallel.ForEach(b.clauses, b.threads(h), func(w, j int) {
		src := streams.At(j)
		if skip(src, h.UpdateP, clauseActive[j]) {
			return
		}
		b.typeI(j, src, &b.workers[w], h, literalActive, xi)
	})
}

// TypeIIFeedbackParallel is TypeIIFeedback with clauses spread over h.Threads goroutines.
func (b *Bank) TypeIIFeedbackParallel(streams *random.Streams, h *HyperParameters, clauseActive []bool,
	literalActive, xi []uint32) {
	h.mustUpdateP()
	b.mustStreams(streams)
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	parallel.ForEach(b.clauses, b.threads(h), func(w, j int) {
		src := streams.At(j)
		if skip(src, h.UpdateP, clauseActive[j]) {
			return
		}
		b.typeII(j, src, &b.workers[w], literalActive, xi)
	})
}

// TypeIIIFeedbackParallel is TypeIIIFeedback with clauses spread over h.Threads goroutines.
func (b *Bank) TypeIIIFeedbackParallel(streams *random.Streams, h *HyperParameters, clauseActive []bool,
	literalActive, xi []uint32, target bool) {
	b.mustTypeIII()
	h.mustTypeIII()
	b.mustStreams(streams)
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	parallel.ForEach(b.clauses, b.threads(h), func(w, j int) {
		if !clauseActive[j] {
			return
		}
		b.typeIII(j, streams.At(j), &b.workers[w], h, literalActive, xi, target)
	})
}
