// Package palette resolves the colours used to highlight rules.
//
// A [Palette] is an ordered list of background colours.
// Palettes come from built-in presets,
// from palette files loaded into a [Registry],
// or from an explicit comma-separated list of hex triplets.
//
// An [Assignment] maps each rule in a rule set to a colour in a palette.
// Rules are assigned colours in order, cycling through the palette
// if there are more rules than colours.
package palette

import (
	"errors"
	"strings"

	"braces.dev/errtrace"
	"github.com/alecthomas/chroma/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a named, ordered list of colours.
type Palette struct {
	// Name of the palette.
	// This is empty for palettes specified inline.
	Name string

	// Colors in the palette.
	// A valid palette has at least one colour.
	Colors []chroma.Colour
}

// Len reports the number of colours in the palette.
func (p Palette) Len() int { return len(p.Colors) }

// Hex returns the hex triplets for the palette, in order.
func (p Palette) Hex() []string {
	hex := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hex[i] = c.String()
	}
	return hex
}

// String returns the name of the palette,
// or its colours if it's unnamed.
func (p Palette) String() string {
	if len(p.Name) > 0 {
		return p.Name
	}
	return strings.Join(p.Hex(), ",")
}

// ParseList parses a comma-separated list of hex triplets into a palette.
//
//	fff,ccc
//	#ff8888,#ffc088
func ParseList(s string) (Palette, error) {
	if len(strings.TrimSpace(s)) == 0 {
		return Palette{}, errtrace.Wrap(errNoColors)
	}

	parts := strings.Split(s, ",")
	colors := make([]chroma.Colour, 0, len(parts))
	for _, part := range parts {
		c, err := ParseColor(part)
		if err != nil {
			return Palette{}, errtrace.Wrap(err)
		}
		colors = append(colors, c)
	}
	return Palette{Colors: colors}, nil
}

var errNoColors = errors.New("no colours have been specified")

// ParseColor parses a single hex triplet in one of the forms
// rgb, #rgb, rrggbb, or #rrggbb.
func ParseColor(s string) (chroma.Colour, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !isHex(hex) || (len(hex) != 3 && len(hex) != 6) {
		return 0, errtrace.Errorf("invalid colour %q: expected a hex triplet like #ffc088", s)
	}

	c := chroma.ParseColour("#" + hex)
	if !c.IsSet() {
		return 0, errtrace.Errorf("invalid colour %q", s)
	}
	return c, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}

var (
	_darkText  = chroma.MustParseColour("#020202")
	_lightText = chroma.MustParseColour("#fdfdfd")
)

// TextColor picks a foreground colour that remains readable
// on top of the given background.
func TextColor(bg chroma.Colour) chroma.Colour {
	c := colorful.Color{
		R: float64(bg.Red()) / 255,
		G: float64(bg.Green()) / 255,
		B: float64(bg.Blue()) / 255,
	}
	if l, _, _ := c.Lab(); l < 0.5 {
		return _lightText
	}
	return _darkText
}
