package clausebank

import "github.com/neurlang/convtsetlin/random"

// initializeRandomStreams draws the exploration mask: about features/s distinct
// literals, the count itself drawn from the normal approximation of Binomial(features, 1/s)
func (b *Bank) initializeRandomStreams(mask []uint32, s float32, src random.Source) {
	for k := range mask {
		mask[k] = 0
	}

	n := b.features
	p := 1.0 / float64(s)

	active := int(src.Normal(float64(n)*p, float64(n)*p*(1-p)))
	if active > n {
		active = n
	}
	if active < 0 {
		active = 0
	}
	for ; active > 0; active-- {
		f := random.Intn(src, n)
		for mask[f/32]&(1<<uint(f%32)) != 0 {
			f = random.Intn(src, n)
		}
		mask[f/32] |= 1 << uint(f%32)
	}
}

// ExplorationMask draws a fresh exploration mask into mask (Chunks() words).
func (b *Bank) ExplorationMask(src random.Source, mask []uint32, s float32) {
	mustLen("exploration mask", len(mask), b.chunks)
	mustSpecificity(s)
	b.initializeRandomStreams(mask, s, src)
}
