// Package model implements the probability models the codec consults to
// turn symbols into cumulative-frequency intervals and back. A Model hides
// the underlying frequency table behind the symbol alphabet, and tags every
// interval it returns as either a plain index CFI or an escape CFI so the
// encoder/decoder state machines know when to retry.
package model

import (
	"github.com/Yair5675/ppm-cli/freqtable"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// Kind distinguishes a plain CFI from one standing in for the escape
// symbol.
type Kind int

const (
	KindIndex Kind = iota
	KindEscape
)

// CFI is a model's answer to a CFI query: the interval itself plus whether
// it belongs to a regular symbol or to the escape mechanism.
type CFI struct {
	Interval freqtable.CFI
	Kind     Kind
}

// ErrUnsupportedSymbol is returned by CFI when the model's mapping has no
// index for the requested symbol.
var ErrUnsupportedSymbol = errors.New("model: symbol is not supported by this model's mapping")

// ErrEmptyCFI is returned by CFI when the symbol maps to an index the
// underlying table currently assigns zero frequency to.
var ErrEmptyCFI = errors.New("model: symbol was assigned an empty cumulative-frequency interval")

// Model is a probability distribution over symbol.Symbol, queried in terms
// of cumulative-frequency intervals.
type Model interface {
	// CFI returns the cumulative-frequency interval assigned to s. It fails
	// with ErrUnsupportedSymbol if s is not part of this model's alphabet,
	// or ErrEmptyCFI if s currently carries zero weight.
	CFI(s symbol.Symbol) (CFI, error)

	// Symbol returns the symbol whose interval contains cf, or false if cf
	// falls outside of every assigned interval (cf >= Total()).
	Symbol(cf numeric.Frequency) (symbol.Symbol, bool)

	// Total returns the sum of every frequency the model currently assigns.
	Total() numeric.Frequency

	// Update adjusts the model's distribution in response to having coded
	// s, e.g. incrementing its frequency in an adaptive model. result is
	// the CFI the preceding CFI call returned for s, letting an adaptive
	// model tell an escape-triggered update from a plain index update.
	// Static models implement this as a no-op.
	Update(s symbol.Symbol, result CFI) error

	// Flush resets any adaptive state back to the model's initial
	// distribution, so that an encoder and a matching decoder can start a
	// fresh session from identical models. Static models implement this as
	// a no-op.
	Flush() error
}

func wrapIndexCFI(cfi freqtable.CFI, isEscape bool) CFI {
	if isEscape {
		return CFI{Interval: cfi, Kind: KindEscape}
	}
	return CFI{Interval: cfi, Kind: KindIndex}
}

func unsupportedSymbolError(s symbol.Symbol) error {
	return errors.Wrapf(ErrUnsupportedSymbol, "symbol %s", s)
}

func emptyCFIError(s symbol.Symbol) error {
	return errors.Wrapf(ErrEmptyCFI, "symbol %s", s)
}

func errWrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}
