// fixedfile highlights the fields of fixed-width and delimited flat files
// as described by a syntax file, and renders the result as HTML.
//
// See fixedfile -help for usage.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"text/template"
	"time"

	"braces.dev/errtrace"
	"go.abhg.dev/fixedfile/internal/errdefer"
	"go.abhg.dev/fixedfile/internal/html"
	"go.abhg.dev/fixedfile/internal/palette"
	"go.abhg.dev/fixedfile/internal/rule"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	// now reports the current time.
	// Defaults to time.Now.
	now func() time.Time

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("fixedfile: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("open debug log: %w", err))
	}
	defer errdefer.Run(&err, closeDebug)

	debugLog := log.New(debugw, "", 0)
	defer func() {
		if err != nil {
			debugLog.Printf("%+v", err)
		}
	}()

	var frontmatter *template.Template
	if len(opts.Frontmatter) > 0 {
		frontmatter, err = template.New("frontmatter").Parse(opts.Frontmatter)
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("bad frontmatter template: %w", err))
		}
	}

	enc, err := inputEncoding(opts.Encoding)
	if err != nil {
		return errtrace.Wrap(err)
	}

	palettes := palette.NewRegistry()
	for _, path := range opts.Palettes {
		debugLog.Printf("Loading palettes from %v", path)
		if err := palettes.LoadFile(string(path)); err != nil {
			return errtrace.Wrap(err)
		}
	}

	generator := Generator{
		Log: debugLog,
		Loader: &rule.Loader{
			Delimiter: byte(opts.Delimiter),
		},
		Palettes:    palettes,
		Colors:      opts.Colors,
		Concurrency: runtime.GOMAXPROCS(0),
		Renderer: &html.Renderer{
			Snippet:     opts.Snippet,
			Encoding:    enc,
			FrontMatter: frontmatter,
			Now:         cmd.now,
		},
	}

	return errtrace.Wrap(generator.Generate(cmd.Stdout, opts.Input, opts.Syntax))
}

// inputEncoding looks up the character encoding with the given name.
// Names are those of the WHATWG Encoding Standard,
// e.g. "windows-1252" or "shift_jis".
// Returns nil for UTF-8, which needs no decoding.
func inputEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errtrace.Errorf("unknown encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}
