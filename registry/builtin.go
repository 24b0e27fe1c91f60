// Package registry resolves the "-model" flag a command-line front end
// exposes into the model.Model a codec needs, looking a name up among the
// builtins or loading it from a custom frequency-table file. Each builtin
// also names the parser.Parser it pairs with by default; the "-mode" flag
// is not handled here.
package registry

import (
	"strings"

	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/parser"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/pkg/errors"
)

// Builtin names a model/parser pairing that ships with the codec rather
// than being loaded from a file.
type Builtin int

const (
	// BuiltinUniform codes every byte with an equal-probability model, one
	// symbol per input byte.
	BuiltinUniform Builtin = iota
)

// ErrUnknownBuiltin is returned by ParseBuiltin when name matches none of
// the registered builtins.
var ErrUnknownBuiltin = errors.New("registry: name does not match any builtin model")

// String implements fmt.Stringer.
func (b Builtin) String() string {
	switch b {
	case BuiltinUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Model builds the model.Model this builtin names, over sim's alphabet.
func (b Builtin) Model(sim symbol.IndexMapping) (model.Model, error) {
	switch b {
	case BuiltinUniform:
		return model.NewUniform(sim)
	default:
		return nil, errors.Errorf("registry: unhandled builtin %d", b)
	}
}

// Parser returns the byte parser this builtin pairs with. Every current
// builtin operates a byte at a time; a future bit-oriented builtin would
// return a parser.BitParser instead.
func (b Builtin) Parser() parser.Parser {
	return parser.ByteParser{}
}

// ParseBuiltin looks up a builtin by its case-insensitive name, as
// supplied on a command line.
func ParseBuiltin(name string) (Builtin, error) {
	switch strings.ToLower(name) {
	case "uniform":
		return BuiltinUniform, nil
	default:
		return 0, errors.Wrapf(ErrUnknownBuiltin, "%q", name)
	}
}
