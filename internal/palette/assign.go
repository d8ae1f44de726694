package palette

import (
	"github.com/alecthomas/chroma/v2"
	"go.abhg.dev/fixedfile/internal/must"
)

// Assignment maps rules to colours in a palette.
//
// Colours are assigned once, when the Assignment is built,
// so a rule has the same colour on every line it highlights.
type Assignment struct {
	palette Palette
	index   []int // rule index => palette index
}

// Assign assigns colours from the palette to the given number of rules.
// The Nth rule receives the Nth colour,
// wrapping around to the start of the palette as needed.
//
// Assign panics if the palette is empty.
func Assign(rules int, p Palette) *Assignment {
	must.Truef(p.Len() > 0, "palette %q has no colours", p.Name)

	index := make([]int, rules)
	for i := range index {
		index[i] = i % p.Len()
	}
	return &Assignment{palette: p, index: index}
}

// Palette returns the palette colours were assigned from.
func (a *Assignment) Palette() Palette { return a.palette }

// ColorIndex reports the position in the palette
// of the colour assigned to the given rule.
func (a *Assignment) ColorIndex(rule int) int {
	return a.index[rule]
}

// Color reports the colour assigned to the given rule.
func (a *Assignment) Color(rule int) chroma.Colour {
	return a.palette.Colors[a.index[rule]]
}
