package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
	"go.abhg.dev/fixedfile/internal/highlight"
	"go.abhg.dev/fixedfile/internal/html"
	"go.abhg.dev/fixedfile/internal/linebuf"
	"go.abhg.dev/fixedfile/internal/palette"
	"go.abhg.dev/fixedfile/internal/rule"
)

// SyntaxLoader parses a syntax file into a rule set.
type SyntaxLoader interface {
	Load(io.Reader) (*rule.RuleSet, error)
}

var _ SyntaxLoader = (*rule.Loader)(nil)

// PaletteResolver turns the value of -colors into a palette.
type PaletteResolver interface {
	Resolve(string) (palette.Palette, error)
}

var _ PaletteResolver = (*palette.Registry)(nil)

// Renderer renders a highlighted document to HTML.
type Renderer interface {
	Render(io.Writer, *html.Document) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator highlights an input file with a syntax file.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger
	Loader   SyntaxLoader
	Palettes PaletteResolver
	Renderer Renderer

	// Colors is the palette name or colour list to resolve.
	Colors string

	// Concurrency is the number of lines highlighted in parallel.
	Concurrency int
}

// Generate highlights the input file at inputPath
// with the rules in the syntax file at syntaxPath,
// and writes the rendered HTML to w.
//
// Nothing is written to w if any step fails.
func (g *Generator) Generate(w io.Writer, inputPath, syntaxPath string) error {
	pal, err := g.Palettes.Resolve(g.Colors)
	if err != nil {
		return errtrace.Wrap(err)
	}
	g.Log.Printf("Using palette %v", pal)

	g.Log.Printf("Loading syntax file %v", syntaxPath)
	syntax, err := os.ReadFile(syntaxPath)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("read syntax file: %w", err))
	}

	rules, err := g.Loader.Load(bytes.NewReader(syntax))
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("%v: %w", syntaxPath, err))
	}
	g.Log.Printf("Loaded %d rules", rules.Len())

	g.Log.Printf("Reading input file %v", inputPath)
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("read input file: %w", err))
	}
	lines := linebuf.Split(input)

	g.Log.Printf("Highlighting %d lines", len(lines))
	highlighter := highlight.Highlighter{
		Rules:       rules,
		Colors:      palette.Assign(rules.Len(), pal),
		Concurrency: g.Concurrency,
		Log:         g.Log,
	}

	doc := html.Document{
		Name:       inputPath,
		Syntax:     syntax,
		SyntaxName: syntaxPath,
		Palette:    pal,
		Lines:      highlighter.Highlight(lines),
	}

	var buff bytes.Buffer
	if err := g.Renderer.Render(&buff, &doc); err != nil {
		return errtrace.Wrap(fmt.Errorf("render: %w", err))
	}

	_, err = buff.WriteTo(w)
	return errtrace.Wrap(err)
}
