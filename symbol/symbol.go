// Package symbol defines the alphabet the codec operates over: every byte
// value plus the two metadata symbols EOF and ESC, along with the mapping
// from symbols to the dense indices a frequency table is keyed by.
package symbol

import "fmt"

// UniqueSymbolsCount is the size of the alphabet: 256 byte values, one EOF
// marker and one escape marker.
const UniqueSymbolsCount = 258

// Kind distinguishes the three flavors a Symbol can take.
type Kind int

const (
	KindByte Kind = iota
	KindEOF
	KindEsc
)

// Symbol is a value from the codec's alphabet. The zero value is the byte
// symbol for 0x00; use the constructors below to build EOF and ESC symbols.
type Symbol struct {
	kind Kind
	b    byte
}

// Byte builds the symbol for the given byte value.
func Byte(b byte) Symbol {
	return Symbol{kind: KindByte, b: b}
}

// EOF is the end-of-stream symbol.
var EOF = Symbol{kind: KindEOF}

// Esc is the escape symbol.
var Esc = Symbol{kind: KindEsc}

// Kind reports which flavor of symbol this is.
func (s Symbol) Kind() Kind {
	return s.kind
}

// ByteValue returns the underlying byte and true if s is a byte symbol,
// or 0 and false otherwise.
func (s Symbol) ByteValue() (byte, bool) {
	if s.kind != KindByte {
		return 0, false
	}
	return s.b, true
}

// IsEscape reports whether s is the escape symbol.
func (s Symbol) IsEscape() bool {
	return s.kind == KindEsc
}

// String implements fmt.Stringer.
func (s Symbol) String() string {
	switch s.kind {
	case KindByte:
		return fmt.Sprintf("%d", s.b)
	case KindEOF:
		return "EOF"
	case KindEsc:
		return "ESCAPE"
	default:
		return "INVALID"
	}
}

// IndexMapping computes a unique, dense index for every symbol a
// probability model assigns a frequency to.
type IndexMapping interface {
	// IndexFor returns the index symbol maps to, and true, or false if the
	// mapping does not support symbol. A returned index always lies in
	// [0, SupportedSymbolsCount()).
	IndexFor(s Symbol) (int, bool)

	// SymbolFor returns the symbol assigned to index, and true, or false if
	// no symbol is mapped to it.
	SymbolFor(index int) (Symbol, bool)

	// SupportedSymbolsCount returns the number of symbols the mapping
	// supports.
	SupportedSymbolsCount() int
}

// DefaultMapping is the IndexMapping every byte value, EOF and ESC in the
// most direct way: Byte(b) maps to b, EOF maps to 256, ESC maps to 257.
type DefaultMapping struct{}

var _ IndexMapping = DefaultMapping{}

// IndexFor implements IndexMapping.
func (DefaultMapping) IndexFor(s Symbol) (int, bool) {
	switch s.kind {
	case KindByte:
		return int(s.b), true
	case KindEOF:
		return 256, true
	case KindEsc:
		return 257, true
	default:
		return 0, false
	}
}

// SymbolFor implements IndexMapping.
func (DefaultMapping) SymbolFor(index int) (Symbol, bool) {
	switch {
	case index >= 0 && index < 256:
		return Byte(byte(index)), true
	case index == 256:
		return EOF, true
	case index == 257:
		return Esc, true
	default:
		return Symbol{}, false
	}
}

// SupportedSymbolsCount implements IndexMapping.
func (DefaultMapping) SupportedSymbolsCount() int {
	return UniqueSymbolsCount
}
