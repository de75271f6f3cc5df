// Package clausebank implements the clause bank of a Convolutional Tsetlin Machine:
// packed automaton state for every clause, clause output evaluation over patches
// and the Type I, Type II and Type III feedback rules.
//
// Literal l of a clause lives in chunk l/32, bit l%32. Clause j owns the words
// TAState[j*chunks*B : (j+1)*chunks*B], B planes per chunk, MSB plane last.
// Inputs Xi hold one row of chunks words per patch.
package clausebank

import "github.com/neurlang/convtsetlin/automaton"

// Bank represents one clause bank in memory
type Bank struct {
	clauses      int
	features     int
	stateBits    int
	indStateBits int
	patches      int

	chunks int
	filter uint32

	// TAState holds the clause automata.
	TAState []uint32

	// IndState holds the Type III indicator automata (nil without Type III).
	IndState []uint32

	// ClauseAndTarget marks, per clause and literal, membership in the inverted target set.
	ClauseAndTarget []uint32

	own     scratch
	workers []scratch
}

// scratch is per worker memory reused across calls
type scratch struct {
	patches  []uint32
	feedback []uint32
}

func (b *Bank) newScratch() scratch {
	return scratch{
		patches:  make([]uint32, b.patches),
		feedback: make([]uint32, b.chunks),
	}
}

// Clauses returns the number of clauses.
func (b *Bank) Clauses() int {
	return b.clauses
}

// Features returns the number of literals per clause.
func (b *Bank) Features() int {
	return b.features
}

// StateBits returns the number of bits per clause automaton.
func (b *Bank) StateBits() int {
	return b.stateBits
}

// IndStateBits returns the number of bits per indicator automaton, 0 without Type III.
func (b *Bank) IndStateBits() int {
	return b.indStateBits
}

// Patches returns the number of patches per sample.
func (b *Bank) Patches() int {
	return b.patches
}

// Chunks returns the number of 32 literal words per clause and per patch row.
func (b *Bank) Chunks() int {
	return b.chunks
}

// Filter returns the mask of the real literals in the last chunk.
func (b *Bank) Filter() uint32 {
	return b.filter
}

// clause returns the automata of clause j
func (b *Bank) clause(j int) []uint32 {
	size := b.chunks * b.stateBits
	return b.TAState[j*size : (j+1)*size : (j+1)*size]
}

// indClause returns the indicator automata of clause j
func (b *Bank) indClause(j int) []uint32 {
	size := b.chunks * b.indStateBits
	return b.IndState[j*size : (j+1)*size : (j+1)*size]
}

// group returns the planes of chunk k within one clause of bits planes per chunk
func group(clause []uint32, k, bits int) []uint32 {
	return clause[k*bits : (k+1)*bits : (k+1)*bits]
}

func (b *Bank) mustLiteral(clause, literal int) {
	if clause < 0 || clause >= b.clauses {
		panic("clausebank: clause index out of range")
	}
	if literal < 0 || literal >= b.features {
		panic("clausebank: literal index out of range")
	}
}

// State gets the counter of the automaton of literal in clause.
func (b *Bank) State(clause, literal int) uint32 {
	b.mustLiteral(clause, literal)
	return automaton.Value(group(b.clause(clause), literal/32, b.stateBits), uint(literal%32))
}

// SetState sets the counter of the automaton of literal in clause.
func (b *Bank) SetState(clause, literal int, v uint32) {
	b.mustLiteral(clause, literal)
	automaton.SetValue(group(b.clause(clause), literal/32, b.stateBits), uint(literal%32), v)
}

// Include reports whether clause includes literal.
func (b *Bank) Include(clause, literal int) bool {
	return b.State(clause, literal)>>uint(b.stateBits-1) != 0
}

// IndicatorState gets the counter of the indicator automaton of literal in clause.
func (b *Bank) IndicatorState(clause, literal int) uint32 {
	b.mustLiteral(clause, literal)
	b.mustTypeIII()
	return automaton.Value(group(b.indClause(clause), literal/32, b.indStateBits), uint(literal%32))
}

// SetIndicatorState sets the counter of the indicator automaton of literal in clause.
func (b *Bank) SetIndicatorState(clause, literal int, v uint32) {
	b.mustLiteral(clause, literal)
	b.mustTypeIII()
	automaton.SetValue(group(b.indClause(clause), literal/32, b.indStateBits), uint(literal%32), v)
}

// Target reports whether literal is marked in the inverted target set of clause.
func (b *Bank) Target(clause, literal int) bool {
	b.mustLiteral(clause, literal)
	b.mustTypeIII()
	return b.ClauseAndTarget[clause*b.chunks+literal/32]&(1<<uint(literal%32)) != 0
}

// SetTarget marks or unmarks literal in the inverted target set of clause.
func (b *Bank) SetTarget(clause, literal int, v bool) {
	b.mustLiteral(clause, literal)
	b.mustTypeIII()
	if v {
		b.ClauseAndTarget[clause*b.chunks+literal/32] |= 1 << uint(literal%32)
	} else {
		b.ClauseAndTarget[clause*b.chunks+literal/32] &^= 1 << uint(literal%32)
	}
}

// LiteralMask allocates a literal active mask with every literal active.
func (b *Bank) LiteralMask() []uint32 {
	var mask = make([]uint32, b.chunks)
	for k := range mask {
		mask[k] = ^uint32(0)
	}
	mask[b.chunks-1] = b.filter
	return mask
}

// ClauseMask allocates a clause active mask with every clause active.
func (b *Bank) ClauseMask() []bool {
	var mask = make([]bool, b.clauses)
	for j := range mask {
		mask[j] = true
	}
	return mask
}
