package main

import "flag"
import "fmt"

import "github.com/neurlang/convtsetlin/datasets/diagonal"
import "github.com/neurlang/convtsetlin/parallel"
import "github.com/neurlang/convtsetlin/patch"
import "github.com/neurlang/convtsetlin/prune"
import "github.com/neurlang/convtsetlin/random"

func split(samples []diagonal.Sample) (images [][]bool, labels []bool) {
	for i := range samples {
		images = append(images, samples[i].Pixels())
		labels = append(labels, samples[i].Label)
	}
	return
}

func main() {
	clauses := flag.Int("clauses", 40, "clauses per polarity")
	stateBits := flag.Int("statebits", 8, "bits per automaton")
	indStateBits := flag.Int("indstatebits", 0, "bits per Type III indicator, 0 disables Type III")
	t := flag.Int("t", 20, "vote margin target")
	s := flag.Float64("s", 3.9, "specificity")
	d := flag.Float64("d", 200, "Type III reward denominator")
	boost := flag.Bool("boost", true, "boost true positive feedback")
	epochs := flag.Int("epochs", 30, "training epochs")
	samples := flag.Int("samples", 2000, "training samples")
	noise := flag.Int("noise", 5, "pixel noise is 1 in this many")
	threads := flag.Int("threads", 0, "threads, 0 means all cores")
	par := flag.Bool("parallel", false, "per clause parallel feedback")
	seed := flag.Uint64("seed", 1, "random seed")
	minimum := flag.Uint("min", 1, "minimum clauses including a literal for it to survive pruning")
	logfile := flag.String("log", "", "write learned clauses to this file")
	pgo := flag.Bool("pgo", false, "collect cpu profile into default.pgo")
	flag.Parse()

	if *pgo {
		defer profile("default.pgo")()
	}

	if *threads == 0 {
		*threads = parallel.Threads()
	}

	var h HyperParameters
	h.Threads = *threads
	h.S = float32(*s)
	h.D = float32(*d)
	h.BoostTruePositiveFeedback = *boost
	h.Clauses = *clauses
	h.StateBits = *stateBits
	h.IndStateBits = *indStateBits
	h.T = *t
	h.Parallel = *par
	h.Seed = *seed
	if *logfile != "" {
		h.SetLogger(*logfile)
	}

	src := random.New(*seed, *seed+1)
	trainImages, trainLabels := split(diagonal.New(src, *samples, *noise))
	testImages, testLabels := split(diagonal.New(src, *samples/4, *noise))

	p := patch.MustNew(diagonal.Size, diagonal.Size, 2, 2, 1)
	m, err := NewMachine(&h, p)
	if err != nil {
		println(err.Error())
		return
	}

	for epoch := 0; epoch < *epochs; epoch++ {
		for i := range trainImages {
			m.Fit(trainImages[i], trainLabels[i])
		}
		train := m.Accuracy(trainImages, trainLabels, *threads)
		test := m.Accuracy(testImages, testLabels, *threads)
		println("Epoch", epoch, "train accuracy:", train, "test accuracy:", test)
		m.Report(epoch, test)
	}

	var count = make([]uint32, p.Features())
	for i, b := range m.banks {
		b.LiteralFrequency(count)
		keep := prune.Keep(count, uint32(*minimum))
		filter := prune.Filter(count, uint32(*minimum))
		fmt.Printf("polarity %d keeps %d of %d literals, filter %d bytes\n", i, len(keep), len(count), len(filter))
		for _, k := range keep {
			fmt.Printf("  %s: %d\n", p.Describe(k), count[k])
		}
	}
}
