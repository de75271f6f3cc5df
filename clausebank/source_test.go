package clausebank

import "math"

// scripted is a Source replaying fixed draws, 0 once exhausted
type scripted struct {
	uints   []uint32
	normals []float64
}

func (s *scripted) Uint32() (o uint32) {
	if len(s.uints) > 0 {
		o, s.uints = s.uints[0], s.uints[1:]
	}
	return
}

func (s *scripted) Max() uint32 {
	return math.MaxUint32
}

func (s *scripted) Normal(mean, variance float64) (o float64) {
	if len(s.normals) > 0 {
		o, s.normals = s.normals[0], s.normals[1:]
	}
	return
}

// pack packs literal truth values into chunks words
func pack(chunks int, literals ...bool) []uint32 {
	var o = make([]uint32, chunks)
	for i, v := range literals {
		if v {
			o[i/32] |= 1 << uint(i%32)
		}
	}
	return o
}
