package clausebank

import "github.com/neurlang/convtsetlin/automaton"
import "github.com/neurlang/convtsetlin/random"

func (b *Bank) mustFeedbackArgs(clauseActive []bool, literalActive, xi []uint32) {
	mustLen("clause active", len(clauseActive), b.clauses)
	mustLen("literal active", len(literalActive), b.chunks)
	mustLen("Xi", len(xi), b.patches*b.chunks)
}

// skip draws the update coin first, then checks the clause activity
func skip(src random.Source, updateP float32, active bool) bool {
	return random.Unit(src) > updateP || !active
}

// TypeIFeedback applies Type I feedback to every active clause selected with probability UpdateP.
// A true clause is reinforced towards the literals of its representative patch (Ia),
// a false clause forgets the explored literals (Ib).
func (b *Bank) TypeIFeedback(src random.Source, h *HyperParameters, clauseActive []bool, literalActive, xi []uint32) {
	h.mustTypeI()
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	for j := 0; j < b.clauses; j++ {
		if skip(src, h.UpdateP, clauseActive[j]) {
			continue
		}
		b.typeI(j, src, &b.own, h, literalActive, xi)
	}
}

func (b *Bank) typeI(j int, src random.Source, sc *scratch, h *HyperParameters, literalActive, xi []uint32) {
	ta := b.clause(j)
	output, patch := b.clauseOutputFeedback(ta, b.stateBits, sc, literalActive, xi, src)

	b.initializeRandomStreams(sc.feedback, h.S, src)
	explore := sc.feedback

	if output {
		// Type Ia
		row := b.row(xi, patch)
		for k := 0; k < b.chunks; k++ {
			planes := group(ta, k, b.stateBits)
			if h.BoostTruePositiveFeedback {
				automaton.Inc(planes, literalActive[k]&row[k])
			} else {
				automaton.Inc(planes, literalActive[k]&row[k]&^explore[k])
			}
			automaton.Dec(planes, literalActive[k]&^row[k]&explore[k])
		}
		return
	}
	// Type Ib
	for k := 0; k < b.chunks; k++ {
		automaton.Dec(group(ta, k, b.stateBits), literalActive[k]&explore[k])
	}
}

// TypeIIFeedback applies Type II feedback to every active clause selected with probability UpdateP.
// A true clause includes the excluded literals which are false in its representative patch.
func (b *Bank) TypeIIFeedback(src random.Source, h *HyperParameters, clauseActive []bool, literalActive, xi []uint32) {
	h.mustUpdateP()
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	for j := 0; j < b.clauses; j++ {
		if skip(src, h.UpdateP, clauseActive[j]) {
			continue
		}
		b.typeII(j, src, &b.own, literalActive, xi)
	}
}

func (b *Bank) typeII(j int, src random.Source, sc *scratch, literalActive, xi []uint32) {
	ta := b.clause(j)
	output, patch := b.clauseOutputFeedback(ta, b.stateBits, sc, literalActive, xi, src)
	if !output {
		return
	}
	row := b.row(xi, patch)
	for k := 0; k < b.chunks; k++ {
		planes := group(ta, k, b.stateBits)
		automaton.Inc(planes, literalActive[k]&^row[k]&^automaton.Action(planes))
	}
}

// TypeIIIFeedback applies Type III feedback to every active clause. The indicator
// automata and the target sets learn from every active clause; afterwards, with
// probability UpdateP, the clause automata whose indicator excludes are decremented.
func (b *Bank) TypeIIIFeedback(src random.Source, h *HyperParameters, clauseActive []bool, literalActive, xi []uint32,
	target bool) {
	b.mustTypeIII()
	h.mustTypeIII()
	b.mustFeedbackArgs(clauseActive, literalActive, xi)
	for j := 0; j < b.clauses; j++ {
		if !clauseActive[j] {
			continue
		}
		b.typeIII(j, src, &b.own, h, literalActive, xi, target)
	}
}

func (b *Bank) typeIII(j int, src random.Source, sc *scratch, h *HyperParameters, literalActive, xi []uint32,
	target bool) {
	ta := b.clause(j)
	ind := b.indClause(j)
	and := b.ClauseAndTarget[j*b.chunks : (j+1)*b.chunks]

	output, patch := b.clauseOutputFeedback(ta, b.stateBits, sc, literalActive, xi, src)

	if output {
		row := b.row(xi, patch)
		if target && random.Unit(src) <= 1-1/h.D {
			for k := 0; k < b.chunks; k++ {
				automaton.Inc(group(ind, k, b.indStateBits), literalActive[k]&and[k]&row[k])
			}
		}
		for k := 0; k < b.chunks; k++ {
			automaton.Dec(group(ind, k, b.indStateBits), literalActive[k]&^and[k]&row[k])
		}
		// every unmarked literal gets marked; with a target the marked ones get unmarked
		for k := 0; k < b.chunks; k++ {
			if target {
				and[k] = ^and[k]
			} else {
				and[k] = ^uint32(0)
			}
		}
		and[b.chunks-1] &= b.filter
	} else {
		literal := b.singleFalseLiteral(ta, b.stateBits, sc, literalActive, xi, src)
		if literal != None {
			k, bit := literal/32, uint32(1)<<uint(literal%32)
			if and[k]&bit == 0 {
				and[k] |= bit
			} else if target {
				and[k] &^= bit
			}
		}
	}

	if random.Unit(src) > h.UpdateP {
		return
	}
	for k := 0; k < b.chunks; k++ {
		indicator := automaton.Action(group(ind, k, b.indStateBits))
		automaton.Dec(group(ta, k, b.stateBits), literalActive[k]&^indicator)
	}
}
