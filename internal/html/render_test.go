package html

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	ttemplate "text/template"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/fixedfile/internal/highlight"
	"go.abhg.dev/fixedfile/internal/palette"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

var _testTime = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

func testNow() time.Time { return _testTime }

func seg(start, end, rule int, name string, color int) highlight.Segment {
	return highlight.Segment{Start: start, End: end, Rule: rule, Name: name, Color: color}
}

func gap(start, end int) highlight.Segment {
	return highlight.Segment{
		Start: start,
		End:   end,
		Rule:  highlight.NoRule,
		Color: highlight.NoColor,
	}
}

func TestRender_line(t *testing.T) {
	t.Parallel()

	pal, err := palette.ParseList("fff,003f5c")
	require.NoError(t, err)

	tests := []struct {
		desc string
		give highlight.Line
		want string
	}{
		{
			desc: "gap only",
			give: highlight.Line{
				Text:     []byte("a < b"),
				Segments: []highlight.Segment{gap(1, 6)},
			},
			want: "a &lt; b",
		},
		{
			desc: "claimed and gap",
			give: highlight.Line{
				Text: []byte("XYZ123"),
				Segments: []highlight.Segment{
					seg(1, 4, 0, "A", 0),
					gap(4, 7),
				},
			},
			want: `<abbr title="A" style="background: #ffffff; color: #020202;">XYZ</abbr>123`,
		},
		{
			desc: "dark background",
			give: highlight.Line{
				Text:     []byte("ab"),
				Segments: []highlight.Segment{seg(1, 3, 1, "B", 1)},
			},
			want: `<abbr title="B" style="background: #003f5c; color: #fdfdfd;">ab</abbr>`,
		},
		{
			desc: "escaped name and text",
			give: highlight.Line{
				Text:     []byte(`<&">`),
				Segments: []highlight.Segment{seg(1, 5, 0, `"Tags" & <stuff>`, 0)},
			},
			want: `<abbr title="&#34;Tags&#34; &amp; &lt;stuff&gt;" ` +
				`style="background: #ffffff; color: #020202;">&lt;&amp;&#34;&gt;</abbr>`,
		},
		{
			desc: "past end of line",
			give: highlight.Line{
				Text: []byte("abc"),
				Segments: []highlight.Segment{
					gap(1, 3),
					seg(3, 6, 0, "A", 0),
					seg(6, 8, 1, "B", 1),
				},
			},
			want: `ab<abbr title="A" style="background: #ffffff; color: #020202;">c</abbr>`,
		},
		{
			desc: "very long segment",
			give: highlight.Line{
				Text:     []byte("abc"),
				Segments: []highlight.Segment{seg(1, 1<<40+1, 0, "Rest", 0)},
			},
			want: `<abbr title="Rest" style="background: #ffffff; color: #020202;">abc</abbr>`,
		},
		{
			desc: "no colour",
			give: highlight.Line{
				Text:     []byte("abc"),
				Segments: []highlight.Segment{seg(1, 4, 0, "A", highlight.NoColor)},
			},
			want: `<abbr title="A">abc</abbr>`,
		},
		{
			desc: "invalid utf-8",
			give: highlight.Line{
				Text:     []byte("a\xffb"),
				Segments: []highlight.Segment{gap(1, 4)},
			},
			want: "a\uFFFDb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			r := render{Palette: pal}
			assert.Equal(t, tt.want, string(r.line(tt.give)))
		})
	}
}

func TestRender_line_encoding(t *testing.T) {
	t.Parallel()

	r := render{
		Palette: palette.Greyscale,
		Decoder: charmap.Windows1252.NewDecoder(),
	}
	got := r.line(highlight.Line{
		Text: []byte("caf\xe9 \x80"),
		Segments: []highlight.Segment{
			seg(1, 5, 0, "Word", 0),
			gap(5, 7),
		},
	})
	assert.Equal(t,
		`<abbr title="Word" style="background: #ffffff; color: #020202;">café</abbr> €`,
		string(got))
}

func TestRenderer_Render_page(t *testing.T) {
	t.Parallel()

	syntax := []byte("start,length,name\n1,3,A\n")
	doc := Document{
		Name:       "/tmp/data/input.txt",
		Syntax:     syntax,
		SyntaxName: "/tmp/data/layout.csv",
		Palette:    palette.Greyscale,
		Lines: []highlight.Line{
			{
				Number: 1,
				Text:   []byte("XYZ123"),
				Segments: []highlight.Segment{
					seg(1, 4, 0, "A", 0),
					gap(4, 7),
				},
			},
			{
				Number:   2,
				Text:     []byte("hello"),
				Segments: []highlight.Segment{gap(1, 6)},
			},
		},
	}

	var buff bytes.Buffer
	require.NoError(t, (&Renderer{Now: testNow}).Render(&buff, &doc))

	got := buff.String()
	assert.True(t, strings.HasPrefix(got, "<!doctype html>"), "got:\n%v", got)

	root, err := html.Parse(bytes.NewReader(buff.Bytes()))
	require.NoError(t, err, "invalid HTML:\n%v", got)

	title := cascadia.MustCompile("head > title").MatchFirst(root)
	require.NotNil(t, title)
	assert.Equal(t, "Analysis of input.txt", allText(title))

	pre := cascadia.MustCompile("pre.fixedfile").MatchFirst(root)
	require.NotNil(t, pre)
	assert.Equal(t, "XYZ123\nhello\n", allText(pre))

	abbrs := cascadia.QueryAll(pre, cascadia.MustCompile("abbr"))
	require.Len(t, abbrs, 1)
	assert.Equal(t, "A", attr(abbrs[0], "title"))
	assert.Equal(t, "XYZ", allText(abbrs[0]))

	footer := cascadia.MustCompile(".fixedfile-footer").MatchFirst(root)
	require.NotNil(t, footer)
	assert.Contains(t, allText(footer), "2024-03-14 15:09:26 +00:00")

	link := cascadia.MustCompile(".fixedfile-footer a").MatchFirst(root)
	require.NotNil(t, link)
	assert.Equal(t, "layout.csv", attr(link, "download"))

	href := attr(link, "href")
	require.True(t, strings.HasPrefix(href, "data:text/csv;base64,"), "href: %v", href)
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(href, "data:text/csv;base64,"))
	require.NoError(t, err)
	assert.Equal(t, syntax, decoded)
}

func TestRenderer_Render_snippet(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, (&Renderer{
		Snippet: true,
		Now:     testNow,
	}).Render(&buff, &Document{
		Name:    "input.txt",
		Palette: palette.Greyscale,
		Lines: []highlight.Line{
			{
				Number:   1,
				Text:     []byte("abc"),
				Segments: []highlight.Segment{seg(1, 4, 0, "A", 1)},
			},
		},
	}))

	got := buff.String()
	assert.True(t, strings.HasPrefix(got, `<pre class="fixedfile">`), "got:\n%v", got)
	assert.NotContains(t, got, "<!doctype")
	assert.NotContains(t, got, "<title>")
	assert.Contains(t, got,
		`<abbr title="A" style="background: #cccccc; color: #020202;">abc</abbr>`+"\n</pre>")
	assert.Contains(t, got, `download="syntax.csv"`)
}

func TestRenderer_Render_noLines(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, (&Renderer{
		Snippet: true,
		Now:     testNow,
	}).Render(&buff, &Document{Name: "empty.txt", Palette: palette.Greyscale}))
	assert.Contains(t, buff.String(), `<pre class="fixedfile"></pre>`)
}

func TestRenderer_Render_frontmatter(t *testing.T) {
	t.Parallel()

	tmpl := ttemplate.Must(ttemplate.New("").Parse(
		"---\ntitle: {{ .Name }}\nlines: {{ .NumLines }}\npalette: {{ .Palette }}\n---\n\n\n"))

	var buff bytes.Buffer
	require.NoError(t, (&Renderer{
		Snippet:     true,
		FrontMatter: tmpl,
		Now:         testNow,
	}).Render(&buff, &Document{
		Name:    "dir/input.txt",
		Palette: palette.Rainbow,
		Lines: []highlight.Line{
			{Number: 1, Text: []byte("a"), Segments: []highlight.Segment{gap(1, 2)}},
		},
	}))

	want := "---\ntitle: input.txt\nlines: 1\npalette: rainbow\n---\n\n<pre"
	got := buff.String()
	assert.True(t, strings.HasPrefix(got, want), "got:\n%v", got)
}

func TestRenderer_Render_frontmatterError(t *testing.T) {
	t.Parallel()

	tmpl := ttemplate.Must(ttemplate.New("").Parse("{{ .DoesNotExist }}"))
	err := (&Renderer{FrontMatter: tmpl}).Render(new(bytes.Buffer), &Document{})
	assert.ErrorContains(t, err, "DoesNotExist")
}

func allText(n *html.Node) string {
	var (
		sb    strings.Builder
		visit func(*html.Node)
	)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for n := n.FirstChild; n != nil; n = n.NextSibling {
			visit(n)
		}
	}
	visit(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
