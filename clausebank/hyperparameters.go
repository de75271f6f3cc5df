package clausebank

import "fmt"

// HyperParameters drive the stochastic feedback rules
type HyperParameters struct {
	Threads int // number of goroutines for the parallel feedback, 0 means all cores

	UpdateP float32 // probability that an active clause is updated this round
	S       float32 // specificity, 1/S of the literals are explored per Type I update
	D       float32 // Type III indicator reward happens with probability 1-1/D

	BoostTruePositiveFeedback bool // reward true literals regardless of exploration
}

// mustUpdateP fails fast when the update probability cannot be compared
func (h *HyperParameters) mustUpdateP() {
	if h.UpdateP != h.UpdateP {
		panic("clausebank: UpdateP is NaN")
	}
}

// mustTypeI checks the hyperparameters read by Type I feedback
func (h *HyperParameters) mustTypeI() {
	h.mustUpdateP()
	mustSpecificity(h.S)
}

// mustTypeIII checks the hyperparameters read by Type III feedback
func (h *HyperParameters) mustTypeIII() {
	h.mustUpdateP()
	if !(h.D > 0) {
		panic(fmt.Sprintf("clausebank: D %v is not positive", h.D))
	}
}

// mustSpecificity rejects s below 1, where 1/s is no longer a probability
func mustSpecificity(s float32) {
	if !(s >= 1) {
		panic(fmt.Sprintf("clausebank: S %v is lower than 1", s))
	}
}
