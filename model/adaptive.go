package model

import (
	"github.com/Yair5675/ppm-cli/freqtable"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// Increment is the frequency weight Adaptive.Update adds to a symbol's
// index after it has been coded.
const Increment = 1

// RescaleThreshold is the total frequency above which Adaptive halves every
// weight, keeping Total() well clear of numeric.MaxFrequency() indefinitely.
const RescaleThreshold = 1 << 20

// Adaptive is a probability model whose distribution shifts towards
// recently-seen symbols, backed by a freqtable.Fenwick table. Every index
// starts with a frequency of one so that no symbol is ever unreachable.
type Adaptive struct {
	mapping symbol.IndexMapping
	table   *freqtable.Fenwick
}

var _ Model = (*Adaptive)(nil)

// NewAdaptive builds an Adaptive model over mapping's alphabet with every
// index starting at an equal weight of one.
func NewAdaptive(mapping symbol.IndexMapping) (*Adaptive, error) {
	table, err := uniformFenwick(mapping.SupportedSymbolsCount())
	if err != nil {
		return nil, errors.Wrap(err, "model: building adaptive model")
	}
	return &Adaptive{mapping: mapping, table: table}, nil
}

// uniformFenwick builds a Fenwick table with every one of n indices
// starting at an equal weight of one.
func uniformFenwick(n int) (*freqtable.Fenwick, error) {
	freqs := make([]numeric.Frequency, n)
	one, err := numeric.NewFrequency(1)
	if err != nil {
		return nil, err
	}
	for i := range freqs {
		freqs[i] = one
	}
	return freqtable.NewFenwick(freqs)
}

// CFI implements Model.
func (a *Adaptive) CFI(s symbol.Symbol) (CFI, error) {
	index, ok := a.mapping.IndexFor(s)
	if !ok {
		return CFI{}, unsupportedSymbolError(s)
	}

	cfi, ok := a.table.CFI(index)
	if !ok {
		return CFI{}, emptyCFIError(s)
	}
	return wrapIndexCFI(cfi, s.IsEscape()), nil
}

// Symbol implements Model.
func (a *Adaptive) Symbol(cf numeric.Frequency) (symbol.Symbol, bool) {
	index, ok := a.table.IndexFor(cf)
	if !ok {
		return symbol.Symbol{}, false
	}
	return a.mapping.SymbolFor(index)
}

// Total implements Model.
func (a *Adaptive) Total() numeric.Frequency {
	return a.table.Total()
}

// Update implements Model by incrementing s's weight, rescaling the whole
// table first if doing so would risk overflowing the table's total. result
// is unused here but available so a future context-sensitive model can
// treat an escape-triggered update (result.Kind == KindEscape) differently
// from a plain index update.
func (a *Adaptive) Update(s symbol.Symbol, result CFI) error {
	index, ok := a.mapping.IndexFor(s)
	if !ok {
		return unsupportedSymbolError(s)
	}

	if uint64(a.table.Total()) >= RescaleThreshold {
		a.rescale()
	}

	if ok := a.table.Add(index, Increment); !ok {
		return errors.Errorf("model: failed to increment frequency for symbol %s", s)
	}
	return nil
}

// rescale halves every index's weight, flooring at one so no symbol ever
// becomes permanently uncodeable.
func (a *Adaptive) rescale() {
	n := a.table.Len()
	freqs := make([]numeric.Frequency, n)
	for i := 0; i < n; i++ {
		cfi, ok := a.table.CFI(i)
		width := uint64(0)
		if ok {
			width = uint64(cfi.End - cfi.Start)
		}
		halved := width / 2
		if halved == 0 {
			halved = 1
		}
		freqs[i], _ = numeric.NewFrequency(halved)
	}

	rebuilt, err := freqtable.NewFenwick(freqs)
	if err != nil {
		// Halving a table that previously fit can never overflow.
		panic(errors.Wrap(err, "model: adaptive rescale produced an invalid table"))
	}
	a.table = rebuilt
}

// Flush implements Model by resetting every index back to its initial
// weight of one, so a fresh decoding session starts from the same
// distribution a fresh encoding session would.
func (a *Adaptive) Flush() error {
	table, err := uniformFenwick(a.mapping.SupportedSymbolsCount())
	if err != nil {
		return errors.Wrap(err, "model: flushing adaptive model")
	}
	a.table = table
	return nil
}
