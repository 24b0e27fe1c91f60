// Command arcode compresses and decompresses streams with this module's
// arithmetic coder, using the builtin uniform model or a custom static
// frequency table.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Yair5675/ppm-cli/codec"
	"github.com/Yair5675/ppm-cli/model"
	"github.com/Yair5675/ppm-cli/parser"
	"github.com/Yair5675/ppm-cli/registry"
	"github.com/Yair5675/ppm-cli/symbol"
	"github.com/icza/bitio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: arcode compress|decompress [OPTION]...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  -in string")
	fmt.Fprintln(os.Stderr, "        input file (default stdin)")
	fmt.Fprintln(os.Stderr, "  -out string")
	fmt.Fprintln(os.Stderr, "        output file (default stdout)")
	fmt.Fprintln(os.Stderr, "  -model string")
	fmt.Fprintln(os.Stderr, "        builtin model name, or path to a custom frequency table (default \"uniform\")")
	fmt.Fprintln(os.Stderr, "  -mode string")
	fmt.Fprintln(os.Stderr, "        byte|bit: symbols per input byte (default \"byte\")")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	command := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)

	var (
		inPath    string
		outPath   string
		modelName string
		mode      string
	)
	flag.StringVar(&inPath, "in", "", "input file (default stdin)")
	flag.StringVar(&outPath, "out", "", "output file (default stdout)")
	flag.StringVar(&modelName, "model", "uniform", "builtin model name, or path to a custom frequency table")
	flag.StringVar(&mode, "mode", "byte", "byte|bit: symbols per input byte")
	flag.Usage = usage
	flag.Parse()

	in, err := openInput(inPath)
	if err != nil {
		log.Fatalf("arcode: %v", err)
	}
	defer in.Close()

	out, err := openOutput(outPath)
	if err != nil {
		log.Fatalf("arcode: %v", err)
	}
	defer out.Close()

	sim := symbol.DefaultMapping{}

	m, p, err := resolveModel(modelName, mode, sim)
	if err != nil {
		log.Fatalf("arcode: %v", err)
	}

	switch command {
	case "compress":
		err = compress(in, out, m, p)
	case "decompress":
		err = decompress(in, out, m, mode)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("arcode: %v", err)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// resolveModel interprets -model as a builtin name, falling back to loading
// it as a path to a custom frequency table file.
func resolveModel(name, mode string, sim symbol.IndexMapping) (model.Model, parser.Parser, error) {
	p, err := resolveParser(mode)
	if err != nil {
		return nil, nil, err
	}

	if b, err := registry.ParseBuiltin(name); err == nil {
		m, err := b.Model(sim)
		return m, p, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("-model %q is neither a builtin nor a readable file: %w", name, err)
	}
	defer f.Close()

	m, err := registry.LoadCustom(f, sim)
	return m, p, err
}

func resolveParser(mode string) (parser.Parser, error) {
	switch mode {
	case "byte", "":
		return parser.ByteParser{}, nil
	case "bit":
		return parser.BitParser{}, nil
	default:
		return nil, fmt.Errorf("unknown -mode %q, want byte or bit", mode)
	}
}

func compress(in io.Reader, out io.Writer, m model.Model, p parser.Parser) error {
	enc := codec.NewEncoder(m)
	bufOut := bufio.NewWriter(out)
	bw := bitio.NewWriter(bufOut)

	r := bufio.NewReader(in)
	flush := func(bytes []byte) error {
		for _, b := range bytes {
			if err := bw.WriteByte(b); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for _, s := range p.ParseByte(b) {
			bytes, err := enc.LoadSymbol(s)
			if err != nil {
				return err
			}
			if err := flush(bytes); err != nil {
				return err
			}
		}
	}

	bytes, err := enc.LoadSymbol(symbol.EOF)
	if err != nil {
		return err
	}
	if err := flush(bytes); err != nil {
		return err
	}
	if err := flush(enc.Finalize()); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return err
	}
	return bufOut.Flush()
}

// bitReaderSource adapts a bitio.Reader to codec.BitSource.
type bitReaderSource struct {
	br *bitio.Reader
}

func (s bitReaderSource) Next() (bool, bool) {
	bit, err := s.br.ReadBool()
	if err != nil {
		return false, false
	}
	return bit, true
}

var _ codec.BitSource = bitReaderSource{}

// decompress mirrors compress's symbol framing: byte mode writes each
// decoded symbol straight out, bit mode regroups 8 one-bit symbols
// MSB-first back into the byte compress split them from.
func decompress(in io.Reader, out io.Writer, m model.Model, mode string) error {
	br := bitio.NewReader(bufio.NewReader(in))
	dec := codec.NewDecoder(m, bitReaderSource{br: br})

	w := bufio.NewWriter(out)

	var pending byte
	var pendingBits int
	for {
		s, ok, err := dec.NextSymbol()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		b, isByte := s.ByteValue()
		if !isByte {
			continue
		}

		if mode != "bit" {
			if err := w.WriteByte(b); err != nil {
				return err
			}
			continue
		}

		pending = pending<<1 | (b & 1)
		pendingBits++
		if pendingBits == 8 {
			if err := w.WriteByte(pending); err != nil {
				return err
			}
			pending, pendingBits = 0, 0
		}
	}
	return w.Flush()
}
