// Package patch implements the sliding window geometry of a 2D boolean input
// and packs every window into one row of literals for the clause bank.
//
// A row holds, for the window at (x, y): a thermometer of the y position,
// a thermometer of the x position, the window pixels, then the negation of
// all of those in the same order.
package patch

import "fmt"

// Patches describes how a width x height x channels image is cut into windows
type Patches struct {
	width, height, subwidth, subheight, channels int
}

// MustNew creates a new window geometry with size, subsize and channels
func MustNew(width, height, subwidth, subheight, channels int) *Patches {
	o, err := New(width, height, subwidth, subheight, channels)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new window geometry with size, subsize and channels
func New(width, height, subwidth, subheight, channels int) (o *Patches, err error) {
	if subwidth < 1 || subheight < 1 {
		return nil, fmt.Errorf("New Patches: Subsize %dx%d is empty", subwidth, subheight)
	}
	if width < subwidth {
		return nil, fmt.Errorf("New Patches: Width %d is lower than Subwidth %d", width, subwidth)
	}
	if height < subheight {
		return nil, fmt.Errorf("New Patches: Height %d is lower than Subheight %d", height, subheight)
	}
	if channels < 1 {
		return nil, fmt.Errorf("New Patches: Channels %d is lower than 1", channels)
	}
	o = new(Patches)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	o.channels = channels
	return
}

// Len returns the number of windows.
func (p *Patches) Len() int {
	return (p.width - p.subwidth + 1) * (p.height - p.subheight + 1)
}

// half is the number of positive literals
func (p *Patches) half() int {
	return (p.height - p.subheight) + (p.width - p.subwidth) + p.subwidth*p.subheight*p.channels
}

// Features returns the number of literals per window, negations included.
func (p *Patches) Features() int {
	return 2 * p.half()
}

// Chunks returns the number of 32 bit words per packed window.
func (p *Patches) Chunks() int {
	return (p.Features()-1)/32 + 1
}

// Pixel returns the index of channel c of pixel (x, y) in the image slice.
func (p *Patches) Pixel(x, y, c int) int {
	return (y*p.width+x)*p.channels + c
}

func set(row []uint32, literal int) {
	row[literal/32] |= 1 << uint(literal%32)
}

// Encode packs every window of image into xi, Len() rows of Chunks() words.
func (p *Patches) Encode(xi []uint32, image []bool) {
	if len(image) != p.width*p.height*p.channels {
		panic(fmt.Sprintf("patch: image has length %d, want %d", len(image), p.width*p.height*p.channels))
	}
	chunks := p.Chunks()
	if len(xi) != p.Len()*chunks {
		panic(fmt.Sprintf("patch: Xi has length %d, want %d", len(xi), p.Len()*chunks))
	}
	for i := range xi {
		xi[i] = 0
	}
	half := p.half()
	positions := (p.height - p.subheight) + (p.width - p.subwidth)
	var n int
	for y := 0; y <= p.height-p.subheight; y++ {
		for x := 0; x <= p.width-p.subwidth; x++ {
			row := xi[n*chunks : (n+1)*chunks]
			n++

			var literal int
			var put = func(v bool) {
				if v {
					set(row, literal)
				} else {
					set(row, literal+half)
				}
				literal++
			}
			for i := 0; i < p.height-p.subheight; i++ {
				put(y > i)
			}
			for i := 0; i < p.width-p.subwidth; i++ {
				put(x > i)
			}
			literal = positions
			for i := 0; i < p.subheight; i++ {
				for j := 0; j < p.subwidth; j++ {
					for c := 0; c < p.channels; c++ {
						put(image[p.Pixel(x+j, y+i, c)])
					}
				}
			}
		}
	}
}

// Describe names literal, for printing learned clauses.
func (p *Patches) Describe(literal int) string {
	half := p.half()
	var neg string
	if literal >= half {
		neg = "NOT "
		literal -= half
	}
	if literal < p.height-p.subheight {
		return fmt.Sprintf("%sy>%d", neg, literal)
	}
	literal -= p.height - p.subheight
	if literal < p.width-p.subwidth {
		return fmt.Sprintf("%sx>%d", neg, literal)
	}
	literal -= p.width - p.subwidth
	c := literal % p.channels
	literal /= p.channels
	return fmt.Sprintf("%spixel(%d,%d,%d)", neg, literal%p.subwidth, literal/p.subwidth, c)
}
