// Package freqtable implements the two reference frequency-table
// structures a probability model consults: an immutable Static table
// backed by a cumulative-sum array, and a mutable Fenwick-tree-backed table
// supporting O(log N) point updates.
package freqtable

import "github.com/Yair5675/ppm-cli/numeric"

// CFI is the cumulative-frequency interval assigned to an index: the
// sub-range [Start/Total, End/Total) of [0, 1).
type CFI struct {
	Start numeric.Frequency
	End   numeric.Frequency
	Total numeric.Frequency
}

// Table is a dense mapping from index to frequency, queried in terms of
// cumulative-frequency intervals.
type Table interface {
	// CFI returns the cumulative-frequency interval assigned to index, and
	// true, or false if the index is out of range or currently carries zero
	// weight (an "empty" CFI, start == end).
	CFI(index int) (CFI, bool)

	// IndexFor returns the unique index i whose CFI satisfies
	// cfi(i).Start <= cf < cfi(i).End, or false if cf >= Total().
	IndexFor(cf numeric.Frequency) (int, bool)

	// Total returns the cumulative sum of every frequency in the table.
	Total() numeric.Frequency

	// Len returns the number of indices the table holds.
	Len() int
}
