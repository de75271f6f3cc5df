package clausebank

import "math/bits"

// LiteralFrequency counts, for every literal, the clauses which include it.
func (b *Bank) LiteralFrequency(count []uint32) {
	mustLen("literal count", len(count), b.features)
	for k := range count {
		count[k] = 0
	}
	for j := 0; j < b.clauses; j++ {
		ta := b.clause(j)
		for k := 0; k < b.features; k++ {
			action := ta[(k/32)*b.stateBits+b.stateBits-1]
			if action&(1<<uint(k%32)) != 0 {
				count[k]++
			}
		}
	}
}

// ClauseSizes counts, for every clause, the literals it includes.
func (b *Bank) ClauseSizes(out []uint32) {
	mustLen("clause sizes", len(out), b.clauses)
	last := b.chunks - 1
	for j := 0; j < b.clauses; j++ {
		ta := b.clause(j)
		var n int
		for k := 0; k < last; k++ {
			n += bits.OnesCount32(ta[k*b.stateBits+b.stateBits-1])
		}
		n += bits.OnesCount32(ta[last*b.stateBits+b.stateBits-1] & b.filter)
		out[j] = uint32(n)
	}
}
