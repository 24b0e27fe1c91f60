package freqtable

import (
	"testing"

	"github.com/Yair5675/ppm-cli/numeric"
)

func mustFreq(t *testing.T, v uint64) numeric.Frequency {
	t.Helper()
	f, err := numeric.NewFrequency(v)
	if err != nil {
		t.Fatalf("unexpected error building frequency %d: %v", v, err)
	}
	return f
}

func TestStaticTableCreation(t *testing.T) {
	table, err := NewStatic([]numeric.Frequency{mustFreq(t, 2), mustFreq(t, 3), mustFreq(t, 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Total() != mustFreq(t, 10) {
		t.Fatalf("expected total 10, got %d", table.Total())
	}

	cases := []struct {
		idx        int
		start, end uint64
		ok         bool
	}{
		{0, 0, 2, true},
		{1, 2, 5, true},
		{2, 5, 10, true},
		{3, 0, 0, false},
	}
	for _, c := range cases {
		cfi, ok := table.CFI(c.idx)
		if ok != c.ok {
			t.Fatalf("index %d: expected ok=%v, got %v", c.idx, c.ok, ok)
		}
		if ok && (cfi.Start != mustFreq(t, c.start) || cfi.End != mustFreq(t, c.end) || cfi.Total != mustFreq(t, 10)) {
			t.Fatalf("index %d: unexpected cfi %+v", c.idx, cfi)
		}
	}
}

func TestStaticTableEmptyCFI(t *testing.T) {
	table, err := NewStatic([]numeric.Frequency{mustFreq(t, 1), mustFreq(t, 0), mustFreq(t, 3), mustFreq(t, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.CFI(1); ok {
		t.Fatalf("expected empty CFI at index 1")
	}
	if _, ok := table.CFI(3); ok {
		t.Fatalf("expected empty CFI at index 3")
	}
}

func TestStaticTableIndexFor(t *testing.T) {
	table, err := NewStatic([]numeric.Frequency{mustFreq(t, 1), mustFreq(t, 2), mustFreq(t, 3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		cf  uint64
		idx int
		ok  bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 1, true},
		{3, 2, true},
		{5, 2, true},
		{6, 0, false},
	}
	for _, c := range cases {
		idx, ok := table.IndexFor(mustFreq(t, c.cf))
		if ok != c.ok {
			t.Fatalf("cf=%d: expected ok=%v, got %v", c.cf, c.ok, ok)
		}
		if ok && idx != c.idx {
			t.Fatalf("cf=%d: expected index %d, got %d", c.cf, c.idx, idx)
		}
	}
}

func TestStaticTableOverflow(t *testing.T) {
	max := numeric.MaxFrequency()
	one := mustFreq(t, 1)
	if _, err := NewStatic([]numeric.Frequency{max, one}); err == nil {
		t.Fatalf("expected overflow error")
	}
}
