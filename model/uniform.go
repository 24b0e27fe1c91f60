package model

import (
	"github.com/Yair5675/ppm-cli/freqtable"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
)

// Uniform assigns every symbol its mapping supports an equal probability.
// Since each index carries a frequency of exactly one, CFI and Symbol are
// computed directly instead of going through a freqtable.Table.
type Uniform struct {
	mapping symbol.IndexMapping
	total   numeric.Frequency
}

var _ Model = (*Uniform)(nil)

// NewUniform builds a Uniform model over mapping's alphabet.
func NewUniform(mapping symbol.IndexMapping) (*Uniform, error) {
	total, err := numeric.NewFrequency(uint64(mapping.SupportedSymbolsCount()))
	if err != nil {
		return nil, errWrap(err, "model: building uniform model")
	}
	return &Uniform{mapping: mapping, total: total}, nil
}

// CFI implements Model.
func (u *Uniform) CFI(s symbol.Symbol) (CFI, error) {
	index, ok := u.mapping.IndexFor(s)
	if !ok {
		return CFI{}, unsupportedSymbolError(s)
	}

	start, err := numeric.NewFrequency(uint64(index))
	if err != nil {
		return CFI{}, errWrap(err, "model: uniform model index too large")
	}
	end, err := numeric.NewFrequency(uint64(index) + 1)
	if err != nil {
		return CFI{}, errWrap(err, "model: uniform model index too large")
	}

	cfi := freqtable.CFI{Start: start, End: end, Total: u.total}
	return wrapIndexCFI(cfi, s.IsEscape()), nil
}

// Symbol implements Model.
func (u *Uniform) Symbol(cf numeric.Frequency) (symbol.Symbol, bool) {
	if cf >= u.total {
		return symbol.Symbol{}, false
	}
	return u.mapping.SymbolFor(int(cf))
}

// Total implements Model.
func (u *Uniform) Total() numeric.Frequency {
	return u.total
}

// Update implements Model. A uniform distribution never changes.
func (u *Uniform) Update(symbol.Symbol, CFI) error {
	return nil
}

// Flush implements Model. A uniform distribution has no adaptive state.
func (u *Uniform) Flush() error {
	return nil
}
