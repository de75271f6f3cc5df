package main

import "fmt"
import "log"
import "os"

import "github.com/sourcegraph/conc/pool"

import "github.com/neurlang/convtsetlin/clausebank"
import "github.com/neurlang/convtsetlin/patch"
import "github.com/neurlang/convtsetlin/random"

// HyperParameters configure the demo machine
type HyperParameters struct {
	clausebank.HyperParameters

	Clauses      int  // clauses per polarity
	StateBits    int  // bits per clause automaton
	IndStateBits int  // bits per indicator automaton, 0 disables Type III
	T            int  // vote margin target
	Parallel     bool // use the per clause parallel feedback
	Seed         uint64

	l *log.Logger
}

// SetLogger sets the output logger file where learned clauses are written
func (h *HyperParameters) SetLogger(filename string) {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		println(err.Error())
		return
	}
	h.l = log.New(outfile, "", 0)
}

// Machine votes with a positive and a negative clause bank
type Machine struct {
	h       *HyperParameters
	patches *patch.Patches
	banks   [2]*clausebank.Bank
	streams [2]*random.Streams
	src     *random.Rand

	xi            []uint32
	out           []uint32
	clauseActive  []bool
	literalActive []uint32
}

// NewMachine creates the two clause banks for the window geometry p
func NewMachine(h *HyperParameters, p *patch.Patches) (*Machine, error) {
	m := &Machine{h: h, patches: p}
	for i := range m.banks {
		b, err := clausebank.New2(h.Clauses, p.Features(), h.StateBits, h.IndStateBits, p.Len())
		if err != nil {
			return nil, err
		}
		m.banks[i] = b
		m.streams[i] = random.NewStreams(h.Seed+uint64(i)+1, h.Clauses)
	}
	m.src = random.New(h.Seed, h.Seed^0x9e3779b97f4a7c15)
	m.xi = make([]uint32, p.Len()*p.Chunks())
	m.out = make([]uint32, h.Clauses)
	m.clauseActive = m.banks[0].ClauseMask()
	m.literalActive = m.banks[0].LiteralMask()
	return m, nil
}

func sum(out []uint32) (o int) {
	for _, v := range out {
		o += int(v)
	}
	return
}

// votes is the clamped positive minus negative vote using the update outputs
func (m *Machine) votes() int {
	m.banks[0].OutputsUpdate(m.out, m.literalActive, m.xi)
	v := sum(m.out)
	m.banks[1].OutputsUpdate(m.out, m.literalActive, m.xi)
	v -= sum(m.out)
	if v > m.h.T {
		v = m.h.T
	}
	if v < -m.h.T {
		v = -m.h.T
	}
	return v
}

// Fit trains on one image
func (m *Machine) Fit(image []bool, label bool) {
	m.patches.Encode(m.xi, image)
	v := m.votes()

	var reward, punish = m.banks[0], m.banks[1]
	var rs, ps = m.streams[0], m.streams[1]
	var p float32
	if label {
		p = float32(m.h.T-v) / float32(2*m.h.T)
	} else {
		reward, punish = punish, reward
		rs, ps = ps, rs
		p = float32(m.h.T+v) / float32(2*m.h.T)
	}
	h := m.h.HyperParameters
	h.UpdateP = p

	if m.h.Parallel {
		reward.TypeIFeedbackParallel(rs, &h, m.clauseActive, m.literalActive, m.xi)
		punish.TypeIIFeedbackParallel(ps, &h, m.clauseActive, m.literalActive, m.xi)
	} else {
		reward.TypeIFeedback(m.src, &h, m.clauseActive, m.literalActive, m.xi)
		punish.TypeIIFeedback(m.src, &h, m.clauseActive, m.literalActive, m.xi)
	}
	if m.h.IndStateBits > 0 {
		if m.h.Parallel {
			reward.TypeIIIFeedbackParallel(rs, &h, m.clauseActive, m.literalActive, m.xi, true)
			punish.TypeIIIFeedbackParallel(ps, &h, m.clauseActive, m.literalActive, m.xi, false)
		} else {
			reward.TypeIIIFeedback(m.src, &h, m.clauseActive, m.literalActive, m.xi, true)
			punish.TypeIIIFeedback(m.src, &h, m.clauseActive, m.literalActive, m.xi, false)
		}
	}
}

// Predict classifies one image. It only reads the banks and is safe for concurrent use.
func (m *Machine) Predict(image []bool) bool {
	var xi = make([]uint32, m.patches.Len()*m.patches.Chunks())
	var out = make([]uint32, m.h.Clauses)
	m.patches.Encode(xi, image)
	m.banks[0].OutputsPredict(out, xi)
	v := sum(out)
	m.banks[1].OutputsPredict(out, xi)
	v -= sum(out)
	return v >= 0
}

// Accuracy evaluates images concurrently and returns the percentage classified correctly
func (m *Machine) Accuracy(images [][]bool, labels []bool, threads int) int {
	if len(images) == 0 {
		return 0
	}
	p := pool.NewWithResults[bool]().WithMaxGoroutines(threads)
	for i := range images {
		i := i
		p.Go(func() bool {
			return m.Predict(images[i]) == labels[i]
		})
	}
	var correct int
	for _, ok := range p.Wait() {
		if ok {
			correct++
		}
	}
	return 100 * correct / len(images)
}

// Report writes the largest clauses of each polarity to the logger
func (m *Machine) Report(epoch, accuracy int) {
	if m.h.l == nil {
		return
	}
	m.h.l.Println("// epoch", epoch, "accuracy", accuracy)
	for i, b := range m.banks {
		var sizes = make([]uint32, b.Clauses())
		b.ClauseSizes(sizes)
		for j := range sizes {
			if sizes[j] == 0 {
				continue
			}
			var clause string
			for k := 0; k < b.Features(); k++ {
				if b.Include(j, k) {
					clause += " " + m.patches.Describe(k)
				}
			}
			m.h.l.Println(fmt.Sprintf("polarity %d clause %d:%s", i, j, clause))
		}
	}
}
