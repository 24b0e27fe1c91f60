package codec

import (
	"github.com/Yair5675/ppm-cli/interval"
	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// Timeout bounds how many synthetic zero bits a Decoder will tolerate past
// the end of its bit source before giving up.
const Timeout = numeric.IntervalBits

// ErrDecompressionTimeout is returned by NextSymbol when the bit source ran
// out without ever producing a terminating EOF symbol.
var ErrDecompressionTimeout = errors.New("codec: decoder exhausted its input without encountering EOF")

// BitSource yields the bits of a compressed stream in order. bitbuf.Iterator
// satisfies this interface.
type BitSource interface {
	// Next returns the next bit and true, or false once the source is
	// exhausted.
	Next() (bool, bool)
}

// Decoder maintains a value window synchronised with an Encoder's interval
// narrowing, turning a bit source back into the symbol sequence that
// produced it.
//
// A Decoder borrows its Model for its entire lifetime; the caller is
// responsible for calling Model.Flush beforehand so the decoder starts from
// the same distribution the encoder started from.
type Decoder struct {
	model       model.Model
	interval    *interval.Interval
	value       numeric.IntervalBoundary
	source      BitSource
	timeoutBits int
}

// NewDecoder creates a Decoder over m and source, priming value with the
// first IntervalBits bits from source (zero-filling and counting towards
// the timeout budget if source runs out early).
func NewDecoder(m model.Model, source BitSource) *Decoder {
	d := &Decoder{
		model:    m,
		interval: interval.Full(),
		source:   source,
	}
	d.loadBitsToValue(numeric.IntervalBits)
	return d
}

// nextBit pulls the next bit from the source, or a synthetic zero (counted
// against the timeout budget) once the source is exhausted.
func (d *Decoder) nextBit() numeric.IntervalBoundary {
	bit, ok := d.source.Next()
	if !ok {
		d.timeoutBits++
		return 0
	}
	return numeric.BitFromBool(bit)
}

// loadBitsToValue shifts n bits from the source into value, MSB-first.
func (d *Decoder) loadBitsToValue(n int) {
	for i := 0; i < n; i++ {
		d.value = d.value.Shl(1).Or(uint64(d.nextBit()))
	}
}

// processIntervalState mirrors Encoder.processIntervalState, additionally
// keeping the decoder's value window in lockstep with the interval.
func (d *Decoder) processIntervalState() error {
	for {
		state, _ := d.interval.ClassifyState()
		switch state {
		case interval.Converging:
			low := d.interval.Low().Shl(1)
			high := d.interval.High().Shl(1).Or(1)
			d.value = d.value.Shl(1).Or(uint64(d.nextBit()))
			if err := d.interval.SetBoundaries(low, high); err != nil {
				return err
			}

		case interval.NearConvergence:
			half := d.interval.System().Half()
			low := d.interval.Low().Shl(1).Xor(uint64(half))
			high := d.interval.High().Shl(1).Or(1).Xor(uint64(half))
			d.value = d.value.Shl(1).Xor(uint64(half)).Or(uint64(d.nextBit()))
			if err := d.interval.SetBoundaries(low, high); err != nil {
				return err
			}

		case interval.NoConvergence:
			return nil
		}
	}
}

// NextSymbol decodes and returns the next symbol from the bit source. It
// returns (sym, true, nil) for a regular decoded byte, (symbol.Symbol{},
// false, nil) once EOF is reached, and a non-nil error for an unsupported
// cumulative frequency, a model error, or ErrDecompressionTimeout. An escape
// symbol is transparently consumed and decoding continues to the next
// underlying symbol.
func (d *Decoder) NextSymbol() (symbol.Symbol, bool, error) {
	if d.timeoutBits >= Timeout {
		return symbol.Symbol{}, false, ErrDecompressionTimeout
	}

	total := d.model.Total()
	width := uint64(d.interval.High()) - uint64(d.interval.Low()) + 1
	numerator := uint64(total)*(uint64(d.value)-uint64(d.interval.Low())+1) - 1
	cfValue := numerator / width
	cf, err := numeric.NewFrequency(cfValue)
	if err != nil {
		return symbol.Symbol{}, false, errors.Wrap(err, "codec: decoder computed an out-of-range cumulative frequency")
	}

	sym, ok := d.model.Symbol(cf)
	if !ok {
		return symbol.Symbol{}, false, errors.Errorf("codec: no symbol maps to cumulative frequency %d", cf)
	}

	cfi, err := d.model.CFI(sym)
	if err != nil {
		return symbol.Symbol{}, false, err
	}
	if err := d.model.Update(sym, cfi); err != nil {
		return symbol.Symbol{}, false, err
	}

	if err := d.interval.Update(interval.CFI(cfi.Interval)); err != nil {
		return symbol.Symbol{}, false, err
	}
	if err := d.processIntervalState(); err != nil {
		return symbol.Symbol{}, false, err
	}

	if cfi.Kind == model.KindEscape {
		return d.NextSymbol()
	}
	if sym.Kind() == symbol.KindEOF {
		return symbol.Symbol{}, false, nil
	}
	return sym, true, nil
}
