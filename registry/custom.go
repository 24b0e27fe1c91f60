package registry

import (
	"encoding/binary"
	"io"

	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/numeric"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// LoadCustom reads a frequency table from r and builds a model.Custom over
// sim's alphabet. The file format is one uint32, little-endian, per symbol
// sim.SupportedSymbolsCount() expects, in index order; this is the
// registry's persistence path for a user-supplied distribution.
func LoadCustom(r io.Reader, sim symbol.IndexMapping) (*model.Custom, error) {
	count := sim.SupportedSymbolsCount()
	raw := make([]byte, 4*count)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.Wrap(err, "registry: reading custom frequency table")
	}

	freqs := make([]numeric.Frequency, count)
	for i := 0; i < count; i++ {
		v := binary.LittleEndian.Uint32(raw[4*i : 4*i+4])
		f, err := numeric.NewFrequency(uint64(v))
		if err != nil {
			return nil, errors.Wrapf(err, "registry: frequency at index %d", i)
		}
		freqs[i] = f
	}

	return model.NewCustom(sim, freqs)
}

// WriteCustom serializes freqs in LoadCustom's format, for tooling that
// produces custom frequency tables.
func WriteCustom(w io.Writer, freqs []numeric.Frequency) error {
	raw := make([]byte, 4*len(freqs))
	for i, f := range freqs {
		binary.LittleEndian.PutUint32(raw[4*i:4*i+4], uint32(f))
	}
	_, err := w.Write(raw)
	return errors.Wrap(err, "registry: writing custom frequency table")
}
