package codec

import (
	"testing"

	"github.com/Yair5675/ppm-cli/bitbuf"
	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
)

func encodeAll(t *testing.T, m model.Model, symbols []symbol.Symbol) []byte {
	t.Helper()
	enc := NewEncoder(m)
	var out []byte
	for _, s := range symbols {
		bytes, err := enc.LoadSymbol(s)
		if err != nil {
			t.Fatalf("unexpected error loading symbol %s: %v", s, err)
		}
		out = append(out, bytes...)
	}
	out = append(out, enc.Finalize()...)
	return out
}

func TestCodecEmptyStream(t *testing.T) {
	m, err := model.NewUniform(symbol.DefaultMapping{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := encodeAll(t, m, []symbol.Symbol{symbol.EOF})
	if len(encoded)*8 < numeric.IntervalBits {
		t.Fatalf("expected at least %d bits, got %d", numeric.IntervalBits, len(encoded)*8)
	}

	m2, _ := model.NewUniform(symbol.DefaultMapping{})
	dec := NewDecoder(m2, bitbuf.NewIteratorFromBytes(encoded))
	_, ok, err := dec.NextSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected EOF (ok=false) on an empty stream")
	}
}

func TestCodecSingleByteRoundTrip(t *testing.T) {
	m, err := model.NewUniform(symbol.DefaultMapping{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := []symbol.Symbol{symbol.Byte(0x41), symbol.EOF}
	encoded := encodeAll(t, m, input)

	m2, _ := model.NewUniform(symbol.DefaultMapping{})
	dec := NewDecoder(m2, bitbuf.NewIteratorFromBytes(encoded))

	sym, ok, err := dec.NextSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a decoded byte, got EOF")
	}
	if b, _ := sym.ByteValue(); b != 0x41 {
		t.Fatalf("expected byte 0x41, got %v", sym)
	}

	_, ok, err = dec.NextSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected EOF after the single byte")
	}
}

func TestCodecMultiByteRoundTrip(t *testing.T) {
	m, err := model.NewUniform(symbol.DefaultMapping{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "the quick brown fox jumps over the lazy dog 0123456789!"
	var input []symbol.Symbol
	for i := 0; i < len(text); i++ {
		input = append(input, symbol.Byte(text[i]))
	}
	input = append(input, symbol.EOF)

	encoded := encodeAll(t, m, input)

	m2, _ := model.NewUniform(symbol.DefaultMapping{})
	dec := NewDecoder(m2, bitbuf.NewIteratorFromBytes(encoded))

	var decoded []byte
	for {
		sym, ok, err := dec.NextSymbol()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		b, _ := sym.ByteValue()
		decoded = append(decoded, b)
	}

	if string(decoded) != text {
		t.Fatalf("round trip mismatch: got %q, want %q", decoded, text)
	}
}

func TestCodecAdaptiveModelRoundTrip(t *testing.T) {
	mEnc, err := model.NewAdaptive(symbol.DefaultMapping{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "aaaaaaaaaabbbbbbccccdde"
	var input []symbol.Symbol
	for i := 0; i < len(text); i++ {
		input = append(input, symbol.Byte(text[i]))
	}
	input = append(input, symbol.EOF)

	encoded := encodeAll(t, mEnc, input)

	mDec, _ := model.NewAdaptive(symbol.DefaultMapping{})
	dec := NewDecoder(mDec, bitbuf.NewIteratorFromBytes(encoded))

	var decoded []byte
	for {
		sym, ok, err := dec.NextSymbol()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		b, _ := sym.ByteValue()
		decoded = append(decoded, b)
	}

	if string(decoded) != text {
		t.Fatalf("adaptive round trip mismatch: got %q, want %q", decoded, text)
	}
}

// escapeMapping is a three-symbol mapping where index 1 is tagged escape,
// used to exercise the encoder/decoder's escape retry protocol.
type escapeMapping struct{}

func (escapeMapping) IndexFor(s symbol.Symbol) (int, bool) {
	if b, ok := s.ByteValue(); ok && b == 'A' {
		return 0, true
	}
	if s.IsEscape() {
		return 1, true
	}
	if s.Kind() == symbol.KindEOF {
		return 2, true
	}
	return 0, false
}

func (escapeMapping) SymbolFor(index int) (symbol.Symbol, bool) {
	switch index {
	case 0:
		return symbol.Byte('A'), true
	case 1:
		return symbol.Esc, true
	case 2:
		return symbol.EOF, true
	default:
		return symbol.Symbol{}, false
	}
}

func (escapeMapping) SupportedSymbolsCount() int { return 3 }

func TestCodecEscapePath(t *testing.T) {
	freqs := []numeric.Frequency{freqVal(t, 1), freqVal(t, 1), freqVal(t, 1)}

	mEnc, err := model.NewCustom(escapeMapping{}, freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := []symbol.Symbol{symbol.Esc, symbol.EOF}
	encoded := encodeAll(t, mEnc, input)

	freqs2 := []numeric.Frequency{freqVal(t, 1), freqVal(t, 1), freqVal(t, 1)}
	mDec, err := model.NewCustom(escapeMapping{}, freqs2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dec := NewDecoder(mDec, bitbuf.NewIteratorFromBytes(encoded))

	// Esc is transparently consumed by NextSymbol's retry loop, so the
	// very first call should surface EOF directly.
	_, ok, err := dec.NextSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected EOF immediately after the escape symbol")
	}
}

func freqVal(t *testing.T, v uint64) numeric.Frequency {
	t.Helper()
	f, err := numeric.NewFrequency(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

// TestCodecAllZeroRunCompressesBelowByteWidth exercises the ground-truth
// compression-ratio scenario: a long run of the most probable symbol under
// a custom model skewed so P(0x00) ~= 0.9 must compress to fewer bits than
// the 8 bits per byte of its input.
func TestCodecAllZeroRunCompressesBelowByteWidth(t *testing.T) {
	mapping := symbol.DefaultMapping{}
	count := mapping.SupportedSymbolsCount()

	freqs := make([]numeric.Frequency, count)
	for i := range freqs {
		freqs[i] = freqVal(t, 1)
	}
	zeroIndex, ok := mapping.IndexFor(symbol.Byte(0x00))
	if !ok {
		t.Fatalf("expected DefaultMapping to support Byte(0x00)")
	}
	// With every other index left at weight 1, weighting 0x00 at
	// 9*(count-1) makes its share of the total ~= 0.9.
	freqs[zeroIndex] = freqVal(t, 9*uint64(count-1))

	m, err := model.NewCustom(mapping, freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := make([]symbol.Symbol, 0, 257)
	for i := 0; i < 256; i++ {
		input = append(input, symbol.Byte(0x00))
	}
	input = append(input, symbol.EOF)

	encoded := encodeAll(t, m, input)
	if got, want := len(encoded)*8, 256*8; got >= want {
		t.Fatalf("expected all-zero run to compress below %d bits, got %d", want, got)
	}

	m2, err := model.NewCustom(mapping, freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dec := NewDecoder(m2, bitbuf.NewIteratorFromBytes(encoded))
	for i := 0; i < 256; i++ {
		sym, ok, err := dec.NextSymbol()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("expected a decoded byte at position %d, got EOF", i)
		}
		if b, _ := sym.ByteValue(); b != 0x00 {
			t.Fatalf("position %d: expected 0x00, got %v", i, sym)
		}
	}
	if _, ok, err := dec.NextSymbol(); err != nil || ok {
		t.Fatalf("expected EOF after the run, got ok=%v err=%v", ok, err)
	}
}

func TestCodecDecoderTimeout(t *testing.T) {
	m, err := model.NewUniform(symbol.DefaultMapping{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded := encodeAll(t, m, []symbol.Symbol{symbol.Byte('A'), symbol.EOF})

	// Truncate well before the EOF CFI's bits are all present.
	truncated := encoded[:1]

	m2, _ := model.NewUniform(symbol.DefaultMapping{})
	dec := NewDecoder(m2, bitbuf.NewIteratorFromBytes(truncated))

	sawTimeout := false
	for i := 0; i < 4; i++ {
		_, ok, err := dec.NextSymbol()
		if err != nil {
			if err != ErrDecompressionTimeout {
				t.Fatalf("expected ErrDecompressionTimeout, got %v", err)
			}
			sawTimeout = true
			break
		}
		if !ok {
			break
		}
	}
	if !sawTimeout {
		t.Fatalf("expected decoder to eventually time out on a truncated stream")
	}
}
