// Package codec implements the arithmetic-coding state machines that drive
// interval narrowing against a model.Model: an Encoder turning symbols into
// bits, and a Decoder turning bits back into symbols.
package codec

import (
	"github.com/Yair5675/ppm-cli/bitbuf"
	"github.com/Yair5675/ppm-cli/interval"
	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
)

// Encoder drives interval narrowing for a sequence of symbols, deferring
// undetermined bits across near-convergence scalings and draining complete
// bytes as they become available.
//
// An Encoder borrows its Model for its entire lifetime; the caller is
// responsible for calling Model.Flush beforehand if the model carries state
// left over from a previous session.
type Encoder struct {
	model          model.Model
	interval       *interval.Interval
	output         *bitbuf.Buffer
	outstandingBit int
}

// NewEncoder creates an Encoder over m, with the interval starting at
// [0, 1).
func NewEncoder(m model.Model) *Encoder {
	return &Encoder{
		model:    m,
		interval: interval.Full(),
		output:   bitbuf.NewBuffer(),
	}
}

// outputWithOutstanding emits bit, followed by !bit repeated
// outstandingBits times (the classic E3 flush order: the determining bit
// first, then the inverted outstanding bits), and resets the outstanding
// counter.
func (e *Encoder) outputWithOutstanding(bit bool) {
	e.output.Append(bit)
	e.output.AppendRepeated(!bit, e.outstandingBit)
	e.outstandingBit = 0
}

// processIntervalState repeatedly narrows the interval in response to its
// classification until it reaches NoConvergence.
func (e *Encoder) processIntervalState() error {
	for {
		state, bit := e.interval.ClassifyState()
		switch state {
		case interval.Converging:
			e.outputWithOutstanding(bit)

			low := e.interval.Low().Shl(1)
			high := e.interval.High().Shl(1).Or(1)
			if err := e.interval.SetBoundaries(low, high); err != nil {
				return err
			}

		case interval.NearConvergence:
			e.outstandingBit++

			half := e.interval.System().Half()
			low := e.interval.Low().Shl(1).Xor(uint64(half))
			high := e.interval.High().Shl(1).Or(1).Xor(uint64(half))
			if err := e.interval.SetBoundaries(low, high); err != nil {
				return err
			}

		case interval.NoConvergence:
			return nil
		}
	}
}

// LoadSymbol codes s against the model, narrowing the interval and running
// the convergence state machine. If the model reports s via an escape CFI,
// LoadSymbol narrows for the escape and then recurses on the same symbol,
// keeping a decoder observing the same bits in lockstep; when s is itself
// the escape symbol, that single escape CFI is all that is coded. It
// returns every complete byte accumulated by the output buffer so far.
func (e *Encoder) LoadSymbol(s symbol.Symbol) ([]byte, error) {
	cfi, err := e.model.CFI(s)
	if err != nil {
		return nil, err
	}
	if err := e.model.Update(s, cfi); err != nil {
		return nil, err
	}

	if err := e.interval.Update(interval.CFI(cfi.Interval)); err != nil {
		return nil, err
	}
	if err := e.processIntervalState(); err != nil {
		return nil, err
	}

	if cfi.Kind == model.KindEscape && !s.IsEscape() {
		return e.LoadSymbol(s)
	}
	return e.output.TakeCompleteBytes(), nil
}

// Finalize emits the last determining bit needed to make the coded interval
// unambiguous, followed by IntervalBits-2 zero bits so that the stream
// always carries at least IntervalBits bits, and returns every remaining
// byte, the trailing one zero-padded if the bit count is not a multiple of
// 8. After Finalize, the Encoder must not be used again.
func (e *Encoder) Finalize() []byte {
	// The terminal interval's low has its top two bits in {00, 01}; the
	// second-from-top bit, combined with one extra outstanding bit,
	// resolves every pending near-convergence scaling.
	e.outstandingBit++
	determining := e.interval.Low().Shr(numeric.IntervalBits-2).And(1) == 1
	e.outputWithOutstanding(determining)
	e.output.AppendRepeated(false, numeric.IntervalBits-2)

	out := e.output.TakeCompleteBytes()
	if leftover, ok := e.output.TakeLeftoverPadded(); ok {
		out = append(out, leftover...)
	}
	return out
}
