// Package random provides the random number source consumed by the clause bank.
//
// The clause bank never owns a generator: every operation receives a Source,
// which keeps training reproducible under a fixed seed.
package random

import "math"
import rand "math/rand/v2"
import "sync"

// Source is a uniform integer generator with a known maximum plus a normal sampler.
type Source interface {

	// Uint32 returns a uniformly distributed value in [0, Max()].
	Uint32() uint32

	// Max reports the largest value returned by Uint32.
	Max() uint32

	// Normal draws from a normal distribution with the given mean and variance.
	Normal(mean, variance float64) float64
}

// Rand is a PCG backed Source.
type Rand struct {
	r *rand.Rand
}

// New creates a Rand seeded by the two seed words.
func New(seed1, seed2 uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// Uint32 returns the next uniform draw of the PCG stream.
func (r *Rand) Uint32() uint32 {
	return r.r.Uint32()
}

// Max is math.MaxUint32, Uint32 covers the full range.
func (r *Rand) Max() uint32 {
	return math.MaxUint32
}

// Normal draws mean + sqrt(variance) * N(0, 1), or mean itself when variance is not positive.
func (r *Rand) Normal(mean, variance float64) float64 {
	if variance <= 0 {
		return mean
	}
	return mean + math.Sqrt(variance)*r.r.NormFloat64()
}

// Locked serializes access to a Source shared between goroutines.
type Locked struct {
	mut sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Uint32 draws from the wrapped Source under the lock.
func (l *Locked) Uint32() (o uint32) {
	l.mut.Lock()
	o = l.src.Uint32()
	l.mut.Unlock()
	return
}

// Max reports the maximum of the wrapped Source.
func (l *Locked) Max() uint32 {
	return l.src.Max()
}

// Normal draws from the wrapped Source under the lock.
func (l *Locked) Normal(mean, variance float64) (o float64) {
	l.mut.Lock()
	o = l.src.Normal(mean, variance)
	l.mut.Unlock()
	return
}

// Unit returns a draw in [0, 1].
func Unit(src Source) float32 {
	return float32(src.Uint32()) / float32(src.Max())
}

// Intn returns a draw in [0, n). n must be positive.
func Intn(src Source, n int) int {
	return int(src.Uint32() % uint32(n))
}
