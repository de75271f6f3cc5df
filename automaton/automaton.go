// Package automaton implements the bit-plane Tsetlin automaton state store.
//
// A group of 32 automata is stored as B consecutive uint32 words (planes).
// Bit i of plane b is bit b of the counter of automaton i. The last plane is
// the most significant one and holds the action (include = 1) of all 32
// automata at once.
package automaton

// Inc increments the states of each of those 32 automata flagged in the active bit vector.
// Counters already at 2^B-1 stay there.
func Inc(planes []uint32, active uint32) {
	var carry = active
	for b := range planes {
		if carry == 0 {
			return
		}
		next := planes[b] & carry
		planes[b] ^= carry
		carry = next
	}
	if carry != 0 {
		// overflow, clamp to max
		for b := range planes {
			planes[b] |= carry
		}
	}
}

// Dec decrements the states of each of those 32 automata flagged in the active bit vector.
// Counters already at 0 stay there.
func Dec(planes []uint32, active uint32) {
	var borrow = active
	for b := range planes {
		if borrow == 0 {
			return
		}
		next := ^planes[b] & borrow
		planes[b] ^= borrow
		borrow = next
	}
	if borrow != 0 {
		// underflow, clamp to min
		for b := range planes {
			planes[b] &^= borrow
		}
	}
}

// Action returns the action plane: bit i is set iff automaton i includes its literal.
func Action(planes []uint32) uint32 {
	return planes[len(planes)-1]
}

// Value reads the counter of automaton bit (0..31) in the group.
func Value(planes []uint32, bit uint) (v uint32) {
	for b := len(planes) - 1; b >= 0; b-- {
		v <<= 1
		v |= (planes[b] >> bit) & 1
	}
	return
}

// SetValue overwrites the counter of automaton bit (0..31) in the group.
// Bits of v above len(planes) are ignored.
func SetValue(planes []uint32, bit uint, v uint32) {
	for b := range planes {
		if v&(1<<uint(b)) != 0 {
			planes[b] |= 1 << bit
		} else {
			planes[b] &^= 1 << bit
		}
	}
}

// Max returns the saturation value 2^B-1 for a group of B planes.
func Max(stateBits int) uint32 {
	return uint32(uint64(1)<<uint(stateBits) - 1)
}
