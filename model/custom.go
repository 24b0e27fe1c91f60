package model

import (
	"github.com/Yair5675/ppm-cli/freqtable"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// Custom is a probability model with a user-supplied, immutable
// distribution backed by a freqtable.Static table.
type Custom struct {
	mapping symbol.IndexMapping
	table   *freqtable.Static
}

var _ Model = (*Custom)(nil)

// NewCustom builds a Custom model over mapping's alphabet, assigning each
// supported index the frequency at the matching position in freqs.
// len(freqs) must equal mapping.SupportedSymbolsCount().
func NewCustom(mapping symbol.IndexMapping, freqs []numeric.Frequency) (*Custom, error) {
	if want := mapping.SupportedSymbolsCount(); want != len(freqs) {
		return nil, errors.Errorf(
			"model: mapping supports %d symbols but %d frequencies were given", want, len(freqs),
		)
	}

	table, err := freqtable.NewStatic(freqs)
	if err != nil {
		return nil, errors.Wrap(err, "model: building custom model")
	}
	return &Custom{mapping: mapping, table: table}, nil
}

// CFI implements Model.
func (c *Custom) CFI(s symbol.Symbol) (CFI, error) {
	index, ok := c.mapping.IndexFor(s)
	if !ok {
		return CFI{}, unsupportedSymbolError(s)
	}

	cfi, ok := c.table.CFI(index)
	if !ok {
		return CFI{}, emptyCFIError(s)
	}
	return wrapIndexCFI(cfi, s.IsEscape()), nil
}

// Symbol implements Model.
func (c *Custom) Symbol(cf numeric.Frequency) (symbol.Symbol, bool) {
	index, ok := c.table.IndexFor(cf)
	if !ok {
		return symbol.Symbol{}, false
	}
	return c.mapping.SymbolFor(index)
}

// Total implements Model.
func (c *Custom) Total() numeric.Frequency {
	return c.table.Total()
}

// Update implements Model. A custom distribution is static and never
// changes in response to coded symbols.
func (c *Custom) Update(symbol.Symbol, CFI) error {
	return nil
}

// Flush implements Model. A custom distribution has no adaptive state.
func (c *Custom) Flush() error {
	return nil
}
