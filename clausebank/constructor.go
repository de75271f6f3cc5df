package clausebank

import "fmt"

// MustNew creates a new clause bank without Type III state, panics on bad sizes
func MustNew(clauses, features, stateBits, patches int) *Bank {
	o, err := New(clauses, features, stateBits, patches)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new clause bank without Type III state
func New(clauses, features, stateBits, patches int) (o *Bank, err error) {
	return New2(clauses, features, stateBits, 0, patches)
}

// MustNew2 creates a new clause bank with indStateBits indicator bits for Type III feedback, panics on bad sizes
func MustNew2(clauses, features, stateBits, indStateBits, patches int) *Bank {
	o, err := New2(clauses, features, stateBits, indStateBits, patches)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New2 creates a new clause bank with indStateBits indicator bits for Type III feedback.
// Use indStateBits 0 to disable Type III.
func New2(clauses, features, stateBits, indStateBits, patches int) (o *Bank, err error) {
	if clauses < 1 {
		return nil, fmt.Errorf("New Bank: Clauses %d is lower than 1", clauses)
	}
	if features < 1 {
		return nil, fmt.Errorf("New Bank: Features %d is lower than 1", features)
	}
	if stateBits < 1 || stateBits > 32 {
		return nil, fmt.Errorf("New Bank: StateBits %d is outside 1..32", stateBits)
	}
	if indStateBits < 0 || indStateBits > 32 {
		return nil, fmt.Errorf("New Bank: IndStateBits %d is outside 0..32", indStateBits)
	}
	if patches < 1 {
		return nil, fmt.Errorf("New Bank: Patches %d is lower than 1", patches)
	}
	o = new(Bank)
	o.clauses = clauses
	o.features = features
	o.stateBits = stateBits
	o.indStateBits = indStateBits
	o.patches = patches
	o.chunks = (features-1)/32 + 1
	if features%32 != 0 {
		o.filter = ^(^uint32(0) << uint(features%32))
	} else {
		o.filter = ^uint32(0)
	}
	o.TAState = make([]uint32, clauses*o.chunks*stateBits)
	if indStateBits > 0 {
		o.IndState = make([]uint32, clauses*o.chunks*indStateBits)
		o.ClauseAndTarget = make([]uint32, clauses*o.chunks)
	}
	o.own = o.newScratch()
	o.Initialize()
	return
}

// Initialize puts every clause automaton at the last exclude state 2^(B-1)-1,
// every indicator automaton at its maximum, and clears the target sets.
func (b *Bank) Initialize() {
	for i := range b.TAState {
		if i%b.stateBits == b.stateBits-1 {
			b.TAState[i] = 0
		} else {
			b.TAState[i] = ^uint32(0)
		}
	}
	for i := range b.IndState {
		b.IndState[i] = ^uint32(0)
	}
	for i := range b.ClauseAndTarget {
		b.ClauseAndTarget[i] = 0
	}
}

// Reset puts every clause automaton at state v.
func (b *Bank) Reset(v uint32) {
	for i := range b.TAState {
		if v&(1<<uint(i%b.stateBits)) != 0 {
			b.TAState[i] = ^uint32(0)
		} else {
			b.TAState[i] = 0
		}
	}
}

func (b *Bank) mustTypeIII() {
	if b.indStateBits == 0 {
		panic("clausebank: bank was created without Type III state")
	}
}

// mustLen fails fast when a caller buffer does not match the bank geometry
func mustLen(name string, have, want int) {
	if have != want {
		panic(fmt.Sprintf("clausebank: %s has length %d, want %d", name, have, want))
	}
}
