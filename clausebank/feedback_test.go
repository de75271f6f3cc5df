package clausebank

import "math"
import "math/bits"
import "testing"

import "github.com/neurlang/convtsetlin/random"

// F=4, B=3, one clause starting with every automaton at 0, Xi = [1,0,1,0]
func TestEndToEndTypeIa(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	b.Reset(0)
	var xi = pack(1, true, false, true, false)
	var out = make([]uint32, 1)

	b.OutputsPredict(out, xi)
	if out[0] != 0 {
		t.Fatalf("all exclude clause fired")
	}

	h := &HyperParameters{UpdateP: 1, S: 4, BoostTruePositiveFeedback: true}
	for round := uint32(1); round <= 4; round++ {
		src := &scripted{
			// update coin, patch choice, explored literal 0
			uints:   []uint32{0, 0, 0},
			normals: []float64{1},
		}
		b.TypeIFeedback(src, h, b.ClauseMask(), b.LiteralMask(), xi)
		if s := b.State(0, 0); s != round {
			t.Fatalf("round %d: literal 0 at %d, want %d", round, s, round)
		}
		if s := b.State(0, 2); s != round {
			t.Fatalf("round %d: literal 2 at %d, want %d", round, s, round)
		}
		if b.State(0, 1) != 0 || b.State(0, 3) != 0 {
			t.Fatalf("round %d: false literals moved", round)
		}
		b.OutputsPredict(out, xi)
		if round < 4 && out[0] != 0 {
			t.Fatalf("round %d: clause fired below the action threshold", round)
		}
		if round == 4 && out[0] != 1 {
			t.Fatalf("round %d: clause with literals 0 and 2 included must fire", round)
		}
	}
	b.OutputsPredict(out, pack(1, true, false, false, false))
	if out[0] != 0 {
		t.Errorf("clause fired without literal 2")
	}
}

func TestTypeIaExploration(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	for k := 0; k < 4; k++ {
		b.SetState(0, k, 2)
	}
	var xi = pack(1, true, false, true, false)
	h := &HyperParameters{UpdateP: 1, S: 4}

	// literal 0 (true) and literal 1 (false) explored
	src := &scripted{uints: []uint32{0, 0, 0, 1}, normals: []float64{2}}
	b.TypeIFeedback(src, h, b.ClauseMask(), b.LiteralMask(), xi)
	want := []uint32{2, 1, 3, 2}
	for k, w := range want {
		if s := b.State(0, k); s != w {
			t.Errorf("literal %d at %d, want %d", k, s, w)
		}
	}
}

func TestTypeIaBoost(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	for k := 0; k < 4; k++ {
		b.SetState(0, k, 2)
	}
	var xi = pack(1, true, false, true, false)
	h := &HyperParameters{UpdateP: 1, S: 1, BoostTruePositiveFeedback: true}
	// S=1 explores every literal
	b.TypeIFeedback(random.New(1, 1), h, b.ClauseMask(), b.LiteralMask(), xi)
	want := []uint32{3, 1, 3, 1}
	for k, w := range want {
		if s := b.State(0, k); s != w {
			t.Errorf("literal %d at %d, want %d", k, s, w)
		}
	}
}

func TestTypeIb(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	for k := 0; k < 4; k++ {
		b.SetState(0, k, 2)
	}
	b.SetState(0, 1, 5)
	var xi = pack(1, true, false, true, false)
	h := &HyperParameters{UpdateP: 1, S: 1}
	b.TypeIFeedback(random.New(2, 2), h, b.ClauseMask(), b.LiteralMask(), xi)
	want := []uint32{1, 4, 1, 1}
	for k, w := range want {
		if s := b.State(0, k); s != w {
			t.Errorf("literal %d at %d, want %d", k, s, w)
		}
	}
}

func TestTypeIGates(t *testing.T) {
	b := MustNew(2, 4, 3, 1)
	var xi = pack(1, true, false, true, false)
	h := &HyperParameters{UpdateP: 0.5, S: 1}
	before := append([]uint32(nil), b.TAState...)

	// coin above UpdateP skips clause 0, clause 1 is inactive
	src := &scripted{uints: []uint32{0xffffffff, 0}}
	b.TypeIFeedback(src, h, []bool{true, false}, b.LiteralMask(), xi)
	if !equal(before, b.TAState) {
		t.Errorf("gated clauses changed")
	}
	if len(src.uints) != 0 {
		t.Errorf("one coin per clause expected, %d draws left", len(src.uints))
	}
}

func TestTypeII(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	b.Reset(1)
	b.SetState(0, 0, 4)
	var xi = pack(1, true, false, true, false)
	h := &HyperParameters{UpdateP: 1}
	b.TypeIIFeedback(random.New(3, 3), h, b.ClauseMask(), b.LiteralMask(), xi)
	want := []uint32{4, 2, 1, 2}
	for k, w := range want {
		if s := b.State(0, k); s != w {
			t.Errorf("literal %d at %d, want %d", k, s, w)
		}
	}

	// a false clause is left alone
	b.SetState(0, 1, 4)
	before := append([]uint32(nil), b.TAState...)
	b.TypeIIFeedback(random.New(3, 3), h, b.ClauseMask(), b.LiteralMask(), xi)
	if !equal(before, b.TAState) {
		t.Errorf("Type II changed a false clause")
	}
}

func TestTypeIIKeepsIncludedLiterals(t *testing.T) {
	b := MustNew(1, 4, 3, 1)
	b.Reset(0)
	var xi = pack(1, false, false, false, false)
	h := &HyperParameters{UpdateP: 1}
	for i := 0; i < 10; i++ {
		b.TypeIIFeedback(random.New(4, uint64(i)), h, b.ClauseMask(), b.LiteralMask(), xi)
	}
	// the empty clause matches until its literals reach include, then it is false
	var included int
	for k := 0; k < 4; k++ {
		if s := b.State(0, k); s > 4 {
			t.Errorf("literal %d pushed past the action threshold to %d", k, s)
		}
		if b.Include(0, k) {
			included++
		}
	}
	if included != 4 {
		t.Errorf("%d literals included, want 4", included)
	}
}

// clause_and_target after a true clause: with a target every membership toggles,
// without a target every literal becomes a member; bits past the last literal stay clear
func TestTypeIIITargetRecurrence(t *testing.T) {
	for _, tc := range []struct {
		name   string
		before uint32
		target bool
		after  uint32
	}{
		{"target toggles", 0x1, true, 0xe},
		{"target toggles back", 0xe, true, 0x1},
		{"target clears padding", 0xfffffff0, true, 0xf},
		{"no target marks all", 0x1, false, 0xf},
		{"no target from empty", 0x0, false, 0xf},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := MustNew2(1, 4, 3, 3, 1)
			b.Reset(0)
			b.ClauseAndTarget[0] = tc.before
			var xi = pack(1, true, true, false, false)
			h := &HyperParameters{UpdateP: 0, D: 2}
			b.TypeIIIFeedback(&scripted{uints: []uint32{0, 0xffffffff, 0xffffffff}}, h, b.ClauseMask(), b.LiteralMask(), xi, tc.target)
			if b.ClauseAndTarget[0] != tc.after {
				t.Errorf("clause_and_target %08x, want %08x", b.ClauseAndTarget[0], tc.after)
			}
		})
	}
}

func TestTypeIIITrueClause(t *testing.T) {
	b := MustNew2(1, 4, 3, 3, 1)
	for k := 0; k < 4; k++ {
		b.SetState(0, k, 2)
		b.SetIndicatorState(0, k, 4)
	}
	b.SetTarget(0, 0, true)
	var xi = pack(1, true, true, false, false)
	h := &HyperParameters{UpdateP: 1, D: 2}

	// patch choice, d coin rewards, update coin passes
	src := &scripted{uints: []uint32{0, 0, 0}}
	b.TypeIIIFeedback(src, h, b.ClauseMask(), b.LiteralMask(), xi, true)

	wantInd := []uint32{5, 3, 4, 4}
	for k, w := range wantInd {
		if s := b.IndicatorState(0, k); s != w {
			t.Errorf("indicator %d at %d, want %d", k, s, w)
		}
	}
	wantTarget := []bool{false, true, true, true}
	for k, w := range wantTarget {
		if b.Target(0, k) != w {
			t.Errorf("target %d is %v, want %v", k, b.Target(0, k), w)
		}
	}
	// literal 1 lost its indicator, so the clause automaton is pushed to exclude
	wantTA := []uint32{2, 1, 2, 2}
	for k, w := range wantTA {
		if s := b.State(0, k); s != w {
			t.Errorf("literal %d at %d, want %d", k, s, w)
		}
	}
}

func TestTypeIIINoRewardWithoutTarget(t *testing.T) {
	b := MustNew2(1, 4, 3, 3, 1)
	for k := 0; k < 4; k++ {
		b.SetIndicatorState(0, k, 4)
	}
	b.SetTarget(0, 0, true)
	var xi = pack(1, true, true, false, false)
	h := &HyperParameters{UpdateP: 0, D: 2}
	// patch choice, update coin fails
	b.TypeIIIFeedback(&scripted{uints: []uint32{0, 0xffffffff}}, h, b.ClauseMask(), b.LiteralMask(), xi, false)
	wantInd := []uint32{4, 3, 4, 4}
	for k, w := range wantInd {
		if s := b.IndicatorState(0, k); s != w {
			t.Errorf("indicator %d at %d, want %d", k, s, w)
		}
	}
	for k := 0; k < 4; k++ {
		if s := b.State(0, k); s != 3 {
			t.Errorf("literal %d moved to %d without the update coin", k, s)
		}
	}
}

func TestTypeIIIFalseClause(t *testing.T) {
	b := MustNew2(1, 4, 3, 3, 1)
	b.Reset(0)
	b.SetState(0, 0, 4)
	b.SetState(0, 1, 4)
	var xi = pack(1, true, false, false, false)
	h := &HyperParameters{UpdateP: 0, D: 2}
	run := func(target bool) {
		// candidate choice, update coin fails
		b.TypeIIIFeedback(&scripted{uints: []uint32{0, 0xffffffff}}, h, b.ClauseMask(), b.LiteralMask(), xi, target)
	}

	run(false)
	if !b.Target(0, 1) {
		t.Fatalf("offending literal 1 not marked")
	}
	run(false)
	if !b.Target(0, 1) {
		t.Fatalf("offending literal 1 unmarked without a target")
	}
	run(true)
	if b.Target(0, 1) {
		t.Fatalf("offending literal 1 still marked with a target")
	}
	for _, k := range []int{0, 2, 3} {
		if b.Target(0, k) {
			t.Errorf("literal %d marked", k)
		}
	}
}

func TestTypeIIIDecrementsUnvalidatedLiterals(t *testing.T) {
	b := MustNew2(1, 40, 4, 2, 1)
	b.Reset(8)
	for k := 0; k < 40; k++ {
		b.SetIndicatorState(0, k, 1)
	}
	b.SetIndicatorState(0, 35, 2)
	var xi = make([]uint32, 2)
	h := &HyperParameters{UpdateP: 1, D: 2}
	b.TypeIIIFeedback(random.New(1, 2), h, b.ClauseMask(), b.LiteralMask(), xi, false)
	for k := 0; k < 40; k++ {
		want := uint32(7)
		if k == 35 {
			want = 8
		}
		if s := b.State(0, k); s != want {
			t.Errorf("literal %d at %d, want %d", k, s, want)
		}
	}
}

func TestExplorationMask(t *testing.T) {
	const features = 100
	b := MustNew(1, features, 8, 1)
	var r = random.New(5, 8)
	var mask = make([]uint32, b.Chunks())
	var total int
	const trials = 2000
	for i := 0; i < trials; i++ {
		b.ExplorationMask(r, mask, 4)
		if mask[b.Chunks()-1]&^b.Filter() != 0 {
			t.Fatalf("exploration mask selects padding: %08x", mask[b.Chunks()-1])
		}
		for _, w := range mask {
			total += bits.OnesCount32(w)
		}
	}
	if mean := float64(total) / trials; mean < 24 || mean > 26 {
		t.Errorf("mean explored literals %f, want about 25", mean)
	}

	b.ExplorationMask(fixedNormal{r, 1e9}, mask, 1)
	var n int
	for _, w := range mask {
		n += bits.OnesCount32(w)
	}
	if n != features {
		t.Errorf("clamped count explores %d literals, want %d", n, features)
	}
	b.ExplorationMask(fixedNormal{r, -5}, mask, 4)
	for _, w := range mask {
		if w != 0 {
			t.Errorf("negative count explored literals")
		}
	}
}

// fixedNormal overrides the normal draw of a real generator
type fixedNormal struct {
	*random.Rand
	v float64
}

func (f fixedNormal) Normal(mean, variance float64) float64 {
	return f.v
}

func TestTypeIIITargetPaddingMultiChunk(t *testing.T) {
	b := MustNew2(1, 40, 3, 3, 1)
	b.Reset(0)
	var xi = make([]uint32, 2)
	h := &HyperParameters{UpdateP: 0, D: 2}
	// patch choice, update coin fails
	b.TypeIIIFeedback(&scripted{uints: []uint32{0, 0xffffffff}}, h, b.ClauseMask(), b.LiteralMask(), xi, false)
	if b.ClauseAndTarget[0] != 0xffffffff || b.ClauseAndTarget[1] != 0xff {
		t.Errorf("clause_and_target %08x %08x, want ffffffff 000000ff", b.ClauseAndTarget[0], b.ClauseAndTarget[1])
	}
}

func TestHyperParametersPanic(t *testing.T) {
	nan := float32(math.NaN())
	b := MustNew2(2, 4, 3, 3, 1)
	xi := pack(1, true, false, true, false)
	src := random.New(1, 2)
	streams := random.NewStreams(1, 2)
	for name, fn := range map[string]func(){
		"type I zero value": func() {
			b.TypeIFeedback(src, &HyperParameters{}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type I S below 1": func() {
			b.TypeIFeedback(src, &HyperParameters{UpdateP: 1, S: 0.5}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type I NaN S": func() {
			b.TypeIFeedback(src, &HyperParameters{UpdateP: 1, S: nan}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type I NaN UpdateP": func() {
			b.TypeIFeedback(src, &HyperParameters{UpdateP: nan, S: 2}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type I parallel zero value": func() {
			b.TypeIFeedbackParallel(streams, &HyperParameters{}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type II NaN UpdateP": func() {
			b.TypeIIFeedback(src, &HyperParameters{UpdateP: nan}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type II parallel NaN UpdateP": func() {
			b.TypeIIFeedbackParallel(streams, &HyperParameters{UpdateP: nan}, b.ClauseMask(), b.LiteralMask(), xi)
		},
		"type III zero D": func() {
			b.TypeIIIFeedback(src, &HyperParameters{UpdateP: 1}, b.ClauseMask(), b.LiteralMask(), xi, true)
		},
		"type III negative D": func() {
			b.TypeIIIFeedback(src, &HyperParameters{UpdateP: 1, D: -2}, b.ClauseMask(), b.LiteralMask(), xi, true)
		},
		"type III parallel zero D": func() {
			b.TypeIIIFeedbackParallel(streams, &HyperParameters{UpdateP: 1}, b.ClauseMask(), b.LiteralMask(), xi, true)
		},
		"exploration mask S zero": func() {
			b.ExplorationMask(src, make([]uint32, 1), 0)
		},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic")
				}
			}()
			fn()
		})
	}
	for k := 0; k < 4; k++ {
		if s := b.State(0, k); s != 3 {
			t.Errorf("literal %d moved to %d by a rejected call", k, s)
		}
	}
}
