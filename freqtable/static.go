package freqtable

import (
	"fmt"

	"github.com/Yair5675/ppm-cli/numeric"
)

// Static is a frequency table whose values cannot change after
// construction. It stores cumulative sums in a flat slice, giving O(1) CFI
// lookups and an O(log N) binary search for IndexFor.
type Static struct {
	cumFreqs []numeric.Frequency
}

// NewStatic builds a Static table from per-index frequencies, which need
// not be cumulative. It fails with an overflow error if any prefix sum
// would exceed numeric.MaxFrequency().
func NewStatic(freqs []numeric.Frequency) (*Static, error) {
	cum := make([]numeric.Frequency, len(freqs)+1)
	var accum uint64
	for i, f := range freqs {
		accum += uint64(f)
		v, err := numeric.NewFrequency(accum)
		if err != nil {
			return nil, fmt.Errorf("freqtable: building static table, index %d caused an overflow: %w", i, err)
		}
		cum[i+1] = v
	}
	return &Static{cumFreqs: cum}, nil
}

// CFI implements Table.
func (s *Static) CFI(index int) (CFI, bool) {
	if index < 0 || index+1 >= len(s.cumFreqs) {
		return CFI{}, false
	}
	start, end := s.cumFreqs[index], s.cumFreqs[index+1]
	if start == end {
		return CFI{}, false
	}
	return CFI{Start: start, End: end, Total: s.Total()}, true
}

// IndexFor implements Table using a branch-tight binary search over the
// cumulative array.
func (s *Static) IndexFor(cf numeric.Frequency) (int, bool) {
	if len(s.cumFreqs) < 2 {
		return 0, false
	}
	left, right := 0, len(s.cumFreqs)-2

	for left <= right {
		middle := (left + right) / 2
		switch {
		case cf < s.cumFreqs[middle]:
			right = middle - 1
		case cf >= s.cumFreqs[middle+1]:
			left = middle + 1
		default:
			return middle, true
		}
	}
	return 0, false
}

// Total implements Table.
func (s *Static) Total() numeric.Frequency {
	return s.cumFreqs[len(s.cumFreqs)-1]
}

// Len implements Table.
func (s *Static) Len() int {
	return len(s.cumFreqs) - 1
}
