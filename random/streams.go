package random

import "github.com/jbarham/primegen"

// Streams holds one independent generator per clause, derived from a master seed.
// Clause i always receives the same sequence regardless of which worker runs it.
type Streams struct {
	seed  uint64
	rands []*Rand
}

// NewStreams derives n generators from the master seed. The second PCG seed word
// of stream i is the i-th prime above 2^16, so no two streams share a seed pair.
func NewStreams(seed uint64, n int) *Streams {
	var s = &Streams{seed: seed, rands: make([]*Rand, n)}
	var pg = primegen.New()
	var prime = pg.Next()
	for prime < 1<<16 {
		prime = pg.Next()
	}
	for i := range s.rands {
		lo := mix(uint32(seed), uint32(i))
		hi := mix(uint32(seed>>32), ^uint32(i))
		s.rands[i] = New(uint64(hi)<<32|uint64(lo), prime)
		prime = pg.Next()
	}
	return s
}

// Len reports the number of streams.
func (s *Streams) Len() int {
	return len(s.rands)
}

// Seed reports the master seed.
func (s *Streams) Seed() uint64 {
	return s.seed
}

// At returns the generator of stream i.
func (s *Streams) At(i int) *Rand {
	return s.rands[i]
}

// mix spreads salt s over n using the xorshift stages of the Neurlang hash,
// without the final modular reduction.
func mix(n uint32, s uint32) uint32 {
	var m = n - s

	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	return m + s
}
