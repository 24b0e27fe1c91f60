package freqtable

import (
	"fmt"

	"github.com/Yair5675/ppm-cli/numeric"
)

// lsb returns the least significant set bit of n.
func lsb(n int) int {
	return n & (-n)
}

// fenwickTree is an implicit-tree structure over an array of uint64s
// supporting O(log N) prefix-sum queries and point updates. It is 1-based:
// index 0 is unused so that the lsb-walk arithmetic holds.
type fenwickTree struct {
	data []uint64
}

// newFenwickTree returns an empty tree with room for size elements.
func newFenwickTree(size int) fenwickTree {
	return fenwickTree{data: make([]uint64, size+1)}
}

// newFenwickTreeFrom builds a tree containing values in O(N), by
// propagating each position's value directly to its parent instead of
// performing N individual O(log N) additions.
func newFenwickTreeFrom(values []uint64) fenwickTree {
	data := make([]uint64, len(values)+1)
	for i := 1; i < len(data); i++ {
		data[i] += values[i-1]
		parent := i + lsb(i)
		if parent < len(data) {
			data[parent] += data[i]
		}
	}
	return fenwickTree{data: data}
}

// sum returns the cumulative sum of every value with 1-based index <= index,
// i.e. the sum of values[0:index] (a Go slice, so index excluded) of the
// original slice passed to newFenwickTreeFrom.
func (t fenwickTree) sum(index int) uint64 {
	var total uint64
	for index > 0 && index < len(t.data) {
		total += t.data[index]
		index -= lsb(index)
	}
	return total
}

// add adds delta to the 1-based index's underlying value and every one of
// its ancestors.
func (t fenwickTree) add(index int, delta uint64) {
	for index < len(t.data) {
		t.data[index] += delta
		index += lsb(index)
	}
}

// len returns the number of elements the tree holds (excluding the unused
// index 0).
func (t fenwickTree) len() int {
	return len(t.data) - 1
}

// Fenwick is a mutable frequency table backed by a fenwickTree, plus a
// cached total kept in lockstep with every successful Add.
type Fenwick struct {
	tree  fenwickTree
	total numeric.Frequency
}

// NewFenwick builds a Fenwick table from per-index frequencies, which need
// not be cumulative. It fails with an overflow error if the sum of freqs
// would exceed numeric.MaxFrequency().
func NewFenwick(freqs []numeric.Frequency) (*Fenwick, error) {
	raw := make([]uint64, len(freqs))
	var sum uint64
	for i, f := range freqs {
		sum += uint64(f)
		raw[i] = uint64(f)
	}
	if _, err := numeric.NewFrequency(sum); err != nil {
		return nil, fmt.Errorf("freqtable: building fenwick table: %w", err)
	}

	total, _ := numeric.NewFrequency(sum)
	return &Fenwick{tree: newFenwickTreeFrom(raw), total: total}, nil
}

// CFI implements Table.
func (f *Fenwick) CFI(index int) (CFI, bool) {
	if index < 0 || index >= f.tree.len() {
		return CFI{}, false
	}
	start := f.tree.sum(index)
	end := f.tree.sum(index + 1)
	if start == end {
		return CFI{}, false
	}
	return CFI{
		Start: numeric.Frequency(start),
		End:   numeric.Frequency(end),
		Total: f.total,
	}, true
}

// IndexFor implements Table by descending the tree directly in O(log N),
// which is more efficient than repeatedly calling sum via binary search.
func (f *Fenwick) IndexFor(cf numeric.Frequency) (int, bool) {
	if cf >= f.total {
		return 0, false
	}

	pos := 0
	remaining := uint64(cf)
	// highestPow2 is the largest power of two <= len(data)-1.
	highestPow2 := 1
	for highestPow2*2 < len(f.tree.data) {
		highestPow2 *= 2
	}

	for step := highestPow2; step > 0; step /= 2 {
		next := pos + step
		if next < len(f.tree.data) && f.tree.data[next] <= remaining {
			pos = next
			remaining -= f.tree.data[next]
		}
	}
	// pos now holds the largest prefix-sum index whose cumulative sum is
	// <= cf; the answer is the 0-based index right after it.
	return pos, true
}

// Add adds delta to the 0-based index's frequency. It returns false,
// leaving both the tree and the cached total untouched, if the resulting
// total would exceed numeric.MaxFrequency(); true otherwise.
func (f *Fenwick) Add(index int, delta int64) bool {
	if index < 0 || index >= f.tree.len() {
		return false
	}

	newTotalSigned := int64(f.total) + delta
	if newTotalSigned < 0 {
		return false
	}
	newTotal, err := numeric.NewFrequency(uint64(newTotalSigned))
	if err != nil {
		return false
	}

	// uint64(delta) for a negative delta wraps around to its two's
	// complement representation, which cancels out correctly when added to
	// the tree's unsigned accumulators.
	f.tree.add(index+1, uint64(delta))
	f.total = newTotal
	return true
}

// Total implements Table.
func (f *Fenwick) Total() numeric.Frequency {
	return f.total
}

// Len implements Table.
func (f *Fenwick) Len() int {
	return f.tree.len()
}
