// Package diagonal implements a synthetic 2D dataset: noisy binary images which
// are positive when a 2x2 diagonal motif appears anywhere in them.
package diagonal

import "github.com/neurlang/convtsetlin/random"

// Size is the image side
const Size = 6

// Sample is one image with its label
type Sample struct {
	Image [Size * Size]bool
	Label bool
}

// Pixels returns the image as a slice, row major.
func (s *Sample) Pixels() []bool {
	return s.Image[:]
}

func motif(img *[Size * Size]bool, x, y int) bool {
	return img[y*Size+x] && img[(y+1)*Size+x+1] && !img[y*Size+x+1] && !img[(y+1)*Size+x]
}

// Contains reports whether the image holds the motif somewhere.
func Contains(img *[Size * Size]bool) bool {
	for y := 0; y < Size-1; y++ {
		for x := 0; x < Size-1; x++ {
			if motif(img, x, y) {
				return true
			}
		}
	}
	return false
}

// New generates n samples, half of them positive, with pixel noise density 1/noise.
func New(src random.Source, n int, noise int) (o []Sample) {
	o = make([]Sample, 0, n)
	for len(o) < n {
		var s Sample
		for i := range s.Image {
			s.Image[i] = random.Intn(src, noise) == 0
		}
		want := len(o)%2 == 0
		if want {
			x, y := random.Intn(src, Size-1), random.Intn(src, Size-1)
			s.Image[y*Size+x] = true
			s.Image[(y+1)*Size+x+1] = true
			s.Image[y*Size+x+1] = false
			s.Image[(y+1)*Size+x] = false
		}
		s.Label = Contains(&s.Image)
		if s.Label != want {
			continue
		}
		o = append(o, s)
	}
	return
}
