package clausebank

import "math/bits"

import "github.com/neurlang/convtsetlin/random"

// None is returned by the single offending literal search when no patch qualifies.
const None = -1

// matches reports whether the clause accepts one patch row, literals outside
// the active mask count as true
func (b *Bank) matches(ta []uint32, stateBits int, active, row []uint32) bool {
	last := b.chunks - 1
	for k := 0; k < last; k++ {
		action := ta[k*stateBits+stateBits-1]
		if action&(row[k]|^active[k]) != action {
			return false
		}
	}
	action := ta[last*stateBits+stateBits-1] & b.filter
	return action&(row[last]|^active[last]) == action
}

// matchesAll reports whether the clause accepts one patch row using every literal
func (b *Bank) matchesAll(ta []uint32, stateBits int, row []uint32) bool {
	last := b.chunks - 1
	for k := 0; k < last; k++ {
		action := ta[k*stateBits+stateBits-1]
		if action&row[k] != action {
			return false
		}
	}
	action := ta[last*stateBits+stateBits-1] & b.filter
	return action&row[last] == action
}

// allExclude reports whether the clause includes no literal at all
func (b *Bank) allExclude(ta []uint32, stateBits int) bool {
	last := b.chunks - 1
	for k := 0; k < last; k++ {
		if ta[k*stateBits+stateBits-1] != 0 {
			return false
		}
	}
	return ta[last*stateBits+stateBits-1]&b.filter == 0
}

// row returns the literals of patch p
func (b *Bank) row(xi []uint32, p int) []uint32 {
	return xi[p*b.chunks : (p+1)*b.chunks : (p+1)*b.chunks]
}

// clauseOutputFeedback evaluates the clause on every patch and picks one of the
// matching patches uniformly at random
func (b *Bank) clauseOutputFeedback(ta []uint32, stateBits int, sc *scratch, active, xi []uint32,
	src random.Source) (output bool, patch int) {
	var count int
	for p := 0; p < b.patches; p++ {
		if b.matches(ta, stateBits, active, b.row(xi, p)) {
			sc.patches[count] = uint32(p)
			count++
		}
	}
	if count == 0 {
		return false, 0
	}
	return true, int(sc.patches[random.Intn(src, count)])
}

// singleFalseLiteral finds the patches where exactly one included literal is false
// and returns that literal for one of them, chosen uniformly at random, or None
func (b *Bank) singleFalseLiteral(ta []uint32, stateBits int, sc *scratch, active, xi []uint32,
	src random.Source) int {
	var count int
	last := b.chunks - 1
patches:
	for p := 0; p < b.patches; p++ {
		row := b.row(xi, p)
		var offending = None
		for k := 0; k <= last; k++ {
			action := ta[k*stateBits+stateBits-1]
			if k == last {
				action &= b.filter
			}
			off := (action & (row[k] | ^active[k])) ^ action
			if off == 0 {
				continue
			}
			if off&(off-1) != 0 || offending != None {
				continue patches
			}
			offending = k*32 + bits.TrailingZeros32(off)
		}
		if offending != None {
			sc.patches[count] = uint32(offending)
			count++
		}
	}
	if count == 0 {
		return None
	}
	return int(sc.patches[random.Intn(src, count)])
}

// OutputsPredict computes the prediction output of every clause into out.
// A clause fires when some patch satisfies it and it includes at least one literal.
func (b *Bank) OutputsPredict(out []uint32, xi []uint32) {
	mustLen("clause output", len(out), b.clauses)
	mustLen("Xi", len(xi), b.patches*b.chunks)
	for j := 0; j < b.clauses; j++ {
		out[j] = 0
		ta := b.clause(j)
		if b.allExclude(ta, b.stateBits) {
			continue
		}
		for p := 0; p < b.patches; p++ {
			if b.matchesAll(ta, b.stateBits, b.row(xi, p)) {
				out[j] = 1
				break
			}
		}
	}
}

// OutputsUpdate computes the training output of every clause into out.
// A clause fires when some patch satisfies its active literals; empty clauses fire.
func (b *Bank) OutputsUpdate(out []uint32, literalActive, xi []uint32) {
	mustLen("clause output", len(out), b.clauses)
	mustLen("literal active", len(literalActive), b.chunks)
	mustLen("Xi", len(xi), b.patches*b.chunks)
	for j := 0; j < b.clauses; j++ {
		out[j] = 0
		ta := b.clause(j)
		for p := 0; p < b.patches; p++ {
			if b.matches(ta, b.stateBits, literalActive, b.row(xi, p)) {
				out[j] = 1
				break
			}
		}
	}
}

// OutputsPatchwise computes the output of every clause on every patch,
// out[j*patches+p] is clause j on patch p.
func (b *Bank) OutputsPatchwise(out []uint32, xi []uint32) {
	mustLen("clause output", len(out), b.clauses*b.patches)
	mustLen("Xi", len(xi), b.patches*b.chunks)
	for j := 0; j < b.clauses; j++ {
		ta := b.clause(j)
		for p := 0; p < b.patches; p++ {
			if b.matchesAll(ta, b.stateBits, b.row(xi, p)) {
				out[j*b.patches+p] = 1
			} else {
				out[j*b.patches+p] = 0
			}
		}
	}
}

// OutputFeedback evaluates clause j like the feedback rules do: it reports the
// clause output under literalActive and the representative patch picked
// uniformly among the matching ones (0 when the clause is false).
func (b *Bank) OutputFeedback(src random.Source, j int, literalActive, xi []uint32) (output bool, patch int) {
	b.mustLiteral(j, 0)
	mustLen("literal active", len(literalActive), b.chunks)
	mustLen("Xi", len(xi), b.patches*b.chunks)
	return b.clauseOutputFeedback(b.clause(j), b.stateBits, &b.own, literalActive, xi, src)
}

// SingleFalseLiteral returns the literal which alone falsifies clause j on some
// patch, chosen uniformly among qualifying patches, or None.
func (b *Bank) SingleFalseLiteral(src random.Source, j int, literalActive, xi []uint32) int {
	b.mustLiteral(j, 0)
	mustLen("literal active", len(literalActive), b.chunks)
	mustLen("Xi", len(xi), b.patches*b.chunks)
	return b.singleFalseLiteral(b.clause(j), b.stateBits, &b.own, literalActive, xi, src)
}
