package interval

import (
	"testing"

	"github.com/Yair5675/ppm-cli/numeric"
)

func freq(v uint64) numeric.Frequency {
	f, err := numeric.NewFrequency(v)
	if err != nil {
		panic(err)
	}
	return f
}

func TestFullInterval(t *testing.T) {
	iv := Full()
	if iv.Low() != 0 {
		t.Errorf("expected low == 0, got %d", iv.Low())
	}
	if iv.High() != numeric.MaxIntervalBoundary() {
		t.Errorf("expected high == max, got %d", iv.High())
	}
}

func TestSetBoundariesRejectsInvariantViolation(t *testing.T) {
	iv := Full()
	if err := iv.SetLow(iv.High()); err == nil {
		t.Fatalf("expected error setting low == high")
	}
	if err := iv.SetLow(iv.High() + 1); err == nil {
		t.Fatalf("expected error setting low > high")
	}
}

func TestUpdateNarrowsAndPreservesInvariant(t *testing.T) {
	iv := Full()
	cfi := CFI{Start: freq(0), End: freq(1), Total: freq(4)}

	if err := iv.Update(cfi); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(iv.Low() < iv.High()) {
		t.Fatalf("invariant low < high broken: low=%d high=%d", iv.Low(), iv.High())
	}
	// Narrowing by [0,1)/4 should put high well below the previous high.
	if iv.High() >= numeric.MaxIntervalBoundary() {
		t.Fatalf("expected high to shrink, got %d", iv.High())
	}
}

func TestUpdateRejectsInvalidCFI(t *testing.T) {
	iv := Full()
	bad := CFI{Start: freq(2), End: freq(2), Total: freq(4)} // start == end
	if err := iv.Update(bad); err == nil {
		t.Fatalf("expected error for start == end")
	}

	bad2 := CFI{Start: freq(1), End: freq(5), Total: freq(4)} // end > total
	if err := iv.Update(bad2); err == nil {
		t.Fatalf("expected error for end > total")
	}
}

func TestClassifyStateConverging(t *testing.T) {
	sys := numeric.NewBitsSystem()
	iv := &Interval{low: sys.Half(), high: sys.Max(), system: sys}
	state, bit := iv.ClassifyState()
	if state != Converging || bit != true {
		t.Fatalf("expected Converging(true), got state=%v bit=%v", state, bit)
	}

	iv2 := &Interval{low: 0, high: sys.Half() - 1, system: sys}
	state2, bit2 := iv2.ClassifyState()
	if state2 != Converging || bit2 != false {
		t.Fatalf("expected Converging(false), got state=%v bit=%v", state2, bit2)
	}
}

func TestClassifyStateNearConvergence(t *testing.T) {
	sys := numeric.NewBitsSystem()
	iv := &Interval{low: sys.OneFourth(), high: sys.ThreeFourths() - 1, system: sys}
	state, _ := iv.ClassifyState()
	if state != NearConvergence {
		t.Fatalf("expected NearConvergence, got %v", state)
	}
}

func TestClassifyStateNoConvergence(t *testing.T) {
	iv := Full()
	state, _ := iv.ClassifyState()
	if state != NoConvergence {
		t.Fatalf("expected NoConvergence for the full interval, got %v", state)
	}
}

func TestUpdatePreservesInvariantAcrossSampleCFIs(t *testing.T) {
	total := uint64(100)
	starts := []uint64{0, 10, 50, 99}
	for _, s := range starts {
		iv := Full()
		cfi := CFI{Start: freq(s), End: freq(s + 1), Total: freq(total)}
		if err := iv.Update(cfi); err != nil {
			t.Fatalf("start=%d: unexpected error: %v", s, err)
		}
		if !(iv.Low() < iv.High()) {
			t.Fatalf("start=%d: invariant broken: low=%d high=%d", s, iv.Low(), iv.High())
		}
	}
}
