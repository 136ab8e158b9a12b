// classattr decodes JVM class-file attribute structures from binary or hex
// files and prints them as text, YAML, CBOR or hex.
//
// Usage:
//
//	classattr [flags] FILE...
//
// Each file holds one or more consecutive structures of the selected
// --kind. Attribute names are resolved through --names, since the constant
// pool is not part of the input:
//
//	classattr --hex --names 9=StackMapTable frame.hex
//	classattr --kind annotation --format yaml ann.bin
//	classattr -i --names 4=RuntimeVisibleAnnotations attrs.bin
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/jvm-classfile/classfile"
	"github.com/wippyai/jvm-classfile/dump"
)

type options struct {
	kind        string
	names       string
	format      string
	hex         bool
	check       bool
	interactive bool
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err != pflag.ErrHelp {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("classattr", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.kind, "kind", "attribute", "structure to decode: "+strings.Join(kindNames(), ", "))
	flagSet.StringVar(&opts.names, "names", "", "attribute name mapping, e.g. 9=StackMapTable,12=Deprecated")
	flagSet.StringVarP(&opts.format, "format", "f", "text", "output format: text, yaml, cbor, hex")
	flagSet.BoolVar(&opts.hex, "hex", false, "input files contain hex text instead of binary")
	flagSet.BoolVar(&opts.check, "check", false, "verify that every structure re-encodes byte for byte")
	flagSet.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the decoded tree in a TUI")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log decoder activity to stderr")
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, "Usage: classattr [flags] FILE...")
		fmt.Fprintln(stderr, "       classattr -i [flags] FILE")
		fmt.Fprintln(stderr)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	files := flagSet.Args()
	if len(files) == 0 {
		flagSet.Usage()
		return fmt.Errorf("no input files")
	}

	decode, ok := kinds[opts.kind]
	if !ok {
		return fmt.Errorf("unknown --kind %q (want one of %s)", opts.kind, strings.Join(kindNames(), ", "))
	}
	switch opts.format {
	case "text", "yaml", "cbor", "hex":
	default:
		return fmt.Errorf("unknown --format %q", opts.format)
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()
	classfile.SetLogger(logger.Named("classfile"))

	nameMap, err := parseNames(opts.names)
	if err != nil {
		return err
	}
	for idx, name := range nameMap {
		if !isKnownAttribute(name) {
			logger.Info("attribute will be kept opaque", zap.Uint16("index", idx), zap.String("name", name))
		}
	}
	var resolver classfile.NameResolver
	if len(nameMap) > 0 {
		resolver = classfile.MapNames(nameMap)
	}

	if opts.interactive {
		if len(files) != 1 {
			return fmt.Errorf("interactive mode takes exactly one file")
		}
		data, err := readInput(files[0], opts.hex)
		if err != nil {
			return err
		}
		nodes, err := decodeAll(data, decode, resolver)
		if err != nil {
			return err
		}
		return runInteractive(files[0], nodes)
	}

	p := printer{
		w:      stdout,
		format: opts.format,
		styled: isTerminal(stdout),
	}

	var result *multierror.Error
	for _, file := range files {
		if err := processFile(file, opts, decode, resolver, &p, logger); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

func processFile(file string, opts options, decode decodeFunc, names classfile.NameResolver, p *printer, logger *zap.Logger) error {
	data, err := readInput(file, opts.hex)
	if err != nil {
		return err
	}
	nodes, err := decodeAll(data, decode, names)
	logger.Debug("decoded file",
		zap.String("file", file),
		zap.Int("bytes", len(data)),
		zap.Int("structures", len(nodes)))

	var errs *multierror.Error
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	offset := 0
	for _, n := range nodes {
		length := n.Length()
		if opts.check {
			if err := checkRoundTrip(n, data[offset:offset+length]); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		offset += length
		if err := p.print(n); err != nil {
			return multierror.Append(errs, err).ErrorOrNil()
		}
	}
	return errs.ErrorOrNil()
}

type printer struct {
	w      io.Writer
	format string
	styled bool
}

func (p *printer) print(n classfile.Node) error {
	if p.format == "hex" {
		data, err := classfile.Encode(n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "% x\n", data)
		return err
	}

	doc, err := dump.Build(n)
	if err != nil {
		return err
	}

	switch p.format {
	case "yaml":
		out, err := dump.YAML(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "---\n%s", out)
		return err
	case "cbor":
		out, err := dump.CBOR(doc)
		if err != nil {
			return err
		}
		// Raw CBOR is unreadable on a terminal.
		if p.styled {
			diag, err := dump.Diagnose(out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(p.w, diag)
			return err
		}
		_, err = io.Copy(p.w, bytes.NewReader(out))
		return err
	default:
		_, err = io.WriteString(p.w, dump.Text(doc, dump.TextOptions{Styled: p.styled}))
		return err
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
