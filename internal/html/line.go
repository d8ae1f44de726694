package html

import (
	"bytes"
	"fmt"
	"html/template"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"go.abhg.dev/fixedfile/internal/highlight"
	"go.abhg.dev/fixedfile/internal/palette"
)

// line renders the segments of a line.
// Columns past the end of the line are absent
// so they render as nothing.
func (r *render) line(line highlight.Line) template.HTML {
	var buf bytes.Buffer
	for _, seg := range line.Segments {
		text := r.decode(seg.Text(line.Text))
		if len(text) == 0 {
			continue
		}

		if seg.IsGap() {
			template.HTMLEscape(&buf, text)
			continue
		}

		buf.WriteString(`<abbr title="`)
		template.HTMLEscape(&buf, []byte(seg.Name))
		buf.WriteString(`"`)
		if bg, ok := r.color(seg.Color); ok {
			fmt.Fprintf(&buf, ` style="background: %v; color: %v;"`, bg, palette.TextColor(bg))
		}
		buf.WriteString(">")
		template.HTMLEscape(&buf, text)
		buf.WriteString("</abbr>")
	}
	return template.HTML(buf.String())
}

func (r *render) color(idx int) (chroma.Colour, bool) {
	if idx < 0 || idx >= r.Palette.Len() {
		return 0, false
	}
	return r.Palette.Colors[idx], true
}

// decode converts text from the input encoding to UTF-8.
func (r *render) decode(text []byte) []byte {
	if r.Decoder != nil {
		if out, err := r.Decoder.Bytes(text); err == nil {
			return out
		}
	}
	if !utf8.Valid(text) {
		text = bytes.ToValidUTF8(text, []byte("\uFFFD"))
	}
	return text
}
