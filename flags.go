package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/fixedfile/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for fixedfile.
type params struct {
	version bool
	help    Help
	config  string

	Debug flagvalue.FileSwitch

	Colors   string
	Palettes []paletteFile

	Delimiter flagvalue.Byte
	Encoding  string

	Snippet     bool
	Frontmatter string

	Input  string
	Syntax string
}

// cliParser parses the command line arguments for fixedfile.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("fixedfile", flag.ContinueOnError)
	// Errors are reported by Parse.
	flag.SetOutput(io.Discard)
	flag.Usage = func() {}

	var p params

	// Colours:
	flag.StringVar(&p.Colors, "colors", "", "")
	flag.StringVar(&p.Colors, "c", "", "")
	flag.Var(flagvalue.ListOf(&p.Palettes), "palettes", "")

	// Input:
	flag.Var(&p.Delimiter, "delimiter", "")
	flag.Var(&p.Delimiter, "d", "")
	flag.StringVar(&p.Encoding, "encoding", "", "")

	// HTML output:
	flag.BoolVar(&p.Snippet, "snippet", false, "")
	flag.BoolVar(&p.Snippet, "s", false, "")
	flag.StringVar(&p.Frontmatter, "frontmatter", "", "")

	// Program-level:
	flag.StringVar(&p.config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()

	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix("FIXEDFILE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errtrace.Wrap(errInvalidArguments)
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "fixedfile", _version)
		return nil, errtrace.Wrap(errHelp)
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h syntax"
		// instead of "-h=syntax".
		// If the argument is a known help topic,
		// take it.
		if _, ok := _helpTopics[Help(args[0])]; ok {
			p.help = Help(args[0])
		}
	}

	if p.help != NoHelp {
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errtrace.Wrap(errHelp)
	}

	switch len(args) {
	case 2:
		p.Input, p.Syntax = args[0], args[1]
	case 0, 1:
		fmt.Fprintln(cmd.Stderr, "Please provide an input file and a syntax file.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errtrace.Wrap(errInvalidArguments)
	default:
		fmt.Fprintf(cmd.Stderr, "Too many arguments: %q\n", args[2:])
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errtrace.Wrap(errInvalidArguments)
	}

	return p, nil
}

// paletteFile is the path to a palette file passed to -palettes.
type paletteFile string

var _ flag.Getter = (*paletteFile)(nil)

func (pf *paletteFile) Get() any { return string(*pf) }

func (pf paletteFile) String() string { return string(pf) }

func (pf *paletteFile) Set(s string) error {
	switch strings.ToLower(filepath.Ext(s)) {
	case ".toml", ".yaml", ".yml":
		*pf = paletteFile(s)
		return nil
	default:
		return errtrace.Errorf("palette file %q must be a .toml, .yaml, or .yml file", s)
	}
}
