// Package html renders highlighted lines as HTML.
package html

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"path/filepath"
	ttemplate "text/template"
	"time"

	"braces.dev/errtrace"
	"go.abhg.dev/fixedfile/internal/highlight"
	"go.abhg.dev/fixedfile/internal/palette"
	"golang.org/x/text/encoding"
)

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_layoutTmpl = template.Must(
		template.New("layout.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/layout.html"),
	)
)

// TimeFormat is the format of the generation timestamp
// printed in the footer.
const TimeFormat = "2006-01-02 15:04:05 -07:00"

// Renderer renders highlighted documents into HTML.
type Renderer struct {
	// Whether we're in snippet mode.
	// In this mode, output will only contain the highlighted lines
	// and footer, and will not be a complete HTML page.
	Snippet bool

	// Encoding of the input text, if it is not UTF-8.
	// Segments are decoded with it before they are written.
	Encoding encoding.Encoding

	// FrontMatter to include at the top of the output, if any.
	FrontMatter *ttemplate.Template

	// Now reports the current time.
	// Defaults to time.Now.
	Now func() time.Time
}

func (r *Renderer) templateName() string {
	if r.Snippet {
		return "Body"
	}
	return "Page"
}

// Document is a highlighted input file.
type Document struct {
	// Name of the input file.
	// Only the base name is shown.
	Name string

	// Syntax file used to highlight the input.
	// This is embedded in the output so readers can download it.
	Syntax []byte

	// SyntaxName is the name of the syntax file, if known.
	SyntaxName string

	// Palette holds the colours referenced by segments.
	Palette palette.Palette

	// Lines of the input file.
	Lines []highlight.Line
}

type pageData struct {
	Name        string
	SyntaxName  string
	SyntaxURL   template.URL
	GeneratedAt string
	Lines       []highlight.Line
}

type frontmatterData struct {
	Name        string
	SyntaxName  string
	NumLines    int
	Palette     string
	GeneratedAt string
}

// Render writes the given document to w.
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	generatedAt := now().Format(TimeFormat)

	syntaxName := filepath.Base(doc.SyntaxName)
	if len(doc.SyntaxName) == 0 {
		syntaxName = "syntax.csv"
	}

	err := r.renderFrontmatter(w, frontmatterData{
		Name:        filepath.Base(doc.Name),
		SyntaxName:  syntaxName,
		NumLines:    len(doc.Lines),
		Palette:     doc.Palette.String(),
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	render := render{Palette: doc.Palette}
	if r.Encoding != nil {
		render.Decoder = r.Encoding.NewDecoder()
	}

	data := pageData{
		Name:        filepath.Base(doc.Name),
		SyntaxName:  syntaxName,
		SyntaxURL:   syntaxURL(doc.Syntax),
		GeneratedAt: generatedAt,
		Lines:       doc.Lines,
	}
	return errtrace.Wrap(template.Must(_layoutTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), &data))
}

func (r *Renderer) renderFrontmatter(w io.Writer, d frontmatterData) error {
	if r.FrontMatter == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := r.FrontMatter.Execute(&buff, d); err != nil {
		return errtrace.Wrap(err)
	}

	bs := bytes.TrimSpace(buff.Bytes())
	if len(bs) == 0 {
		return nil
	}
	bs = append(bs, '\n', '\n')

	_, err := w.Write(bs)
	return errtrace.Wrap(err)
}

// syntaxURL embeds the syntax file into a data URL.
func syntaxURL(syntax []byte) template.URL {
	return template.URL("data:text/csv;base64," +
		base64.StdEncoding.EncodeToString(syntax))
}

type render struct {
	Palette palette.Palette

	// Decoder converts input text to UTF-8.
	// If nil, input text is assumed to be UTF-8.
	Decoder *encoding.Decoder
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"line": r.line,
	}
}
