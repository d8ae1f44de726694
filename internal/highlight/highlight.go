package highlight

import (
	"cmp"
	"log"
	"slices"

	"go.abhg.dev/fixedfile/internal/must"
	"go.abhg.dev/fixedfile/internal/palette"
	"go.abhg.dev/fixedfile/internal/rule"
	"golang.org/x/sync/errgroup"
)

// ColorAssigner reports the colour assigned to a rule,
// identified by its index in the rule set.
type ColorAssigner interface {
	ColorIndex(rule int) int
}

var _ ColorAssigner = (*palette.Assignment)(nil)

// Highlighter decomposes lines into segments according to a rule set.
//
// A Highlighter does not modify its rule set or colour assignment
// and may be used from multiple goroutines.
type Highlighter struct {
	// Rules to apply to each line, in order of precedence.
	// A nil rule set highlights nothing.
	Rules *rule.RuleSet

	// Colors assigns colours to rules.
	// If nil, all segments have NoColor.
	Colors ColorAssigner

	// Concurrency is the maximum number of lines
	// highlighted in parallel by Highlight.
	// Lines are highlighted one at a time if this is less than 2.
	Concurrency int

	// Log receives debug messages, if non-nil.
	Log *log.Logger
}

// Highlight decomposes all the given lines.
// The result holds one entry per line, in the same order.
func (h *Highlighter) Highlight(lines [][]byte) []Line {
	out := make([]Line, len(lines))
	if h.Concurrency < 2 || len(lines) < 2 {
		for i, text := range lines {
			out[i] = h.Line(i+1, text)
		}
		return out
	}

	// Lines are independent of each other
	// so each one can be handled separately.
	var g errgroup.Group
	g.SetLimit(h.Concurrency)
	for i, text := range lines {
		g.Go(func() error {
			out[i] = h.Line(i+1, text)
			return nil
		})
	}
	must.NotErrorf(g.Wait(), "highlighting %d lines", len(lines))
	return out
}

// claim is a run of 0-based columns [start, end) owned by a rule.
type claim struct {
	rule       int
	start, end int
}

// Line decomposes a single line into segments.
// n is the 1-based line number, used for diagnostics.
//
// The segments cover the columns of the line,
// and any columns past its end that applicable rules asked for.
// Those extra columns are absent from the text;
// see [Segment.Text].
//
// Work depends on the number of rules,
// not on how many columns they cover.
func (h *Highlighter) Line(n int, text []byte) Line {
	var (
		rules []*rule.Rule
		delim byte
	)
	if h.Rules != nil {
		rules, delim = h.Rules.Rules, h.Rules.Delimiter
	}

	width := len(text)
	var claims []claim // sorted by start, non-overlapping
	for i, r := range rules {
		if !r.AppliesTo(text) {
			continue
		}

		start, end, ok := r.Span(text, delim)
		if !ok || start >= end {
			continue
		}

		if end > len(text) && h.Log != nil {
			h.Log.Printf("line %d: rule %q (columns %d-%d) extends past the end of the line (%d columns)",
				n, r.Name, start+1, end, len(text))
		}
		width = max(width, end)
		claims = claimFree(claims, claim{rule: i, start: start, end: end})
	}

	var segments []Segment
	appendSegment := func(c claim) {
		seg := Segment{
			Start: c.start + 1,
			End:   c.end + 1,
			Rule:  c.rule,
			Color: NoColor,
		}
		if c.rule != NoRule {
			seg.Name = rules[c.rule].Name
			if h.Colors != nil {
				seg.Color = h.Colors.ColorIndex(c.rule)
			}
		}
		segments = append(segments, seg)
	}

	next := 0 // first column not yet covered
	for _, c := range claims {
		if next < c.start {
			appendSegment(claim{rule: NoRule, start: next, end: c.start})
		}
		appendSegment(c)
		next = c.end
	}
	if next < width {
		appendSegment(claim{rule: NoRule, start: next, end: width})
	}

	checkCoverage(n, width, segments)
	return Line{
		Number:   n,
		Text:     text,
		Segments: segments,
	}
}

// claimFree adds the parts of c that are not already claimed
// to claims, keeping claims sorted by start.
func claimFree(claims []claim, c claim) []claim {
	var free []claim
	next := c.start
	for _, old := range claims {
		if old.end <= next {
			continue
		}
		if old.start >= c.end {
			break
		}
		if next < old.start {
			free = append(free, claim{rule: c.rule, start: next, end: old.start})
		}
		next = max(next, old.end)
		if next >= c.end {
			break
		}
	}
	if next < c.end {
		free = append(free, claim{rule: c.rule, start: next, end: c.end})
	}
	if len(free) == 0 {
		return claims
	}

	claims = append(claims, free...)
	slices.SortFunc(claims, func(a, b claim) int {
		return cmp.Compare(a.start, b.start)
	})
	return claims
}

// checkCoverage panics if the segments don't cover
// columns [1, width+1) exactly once, in order.
func checkCoverage(n, width int, segments []Segment) {
	next := 1
	for _, seg := range segments {
		must.Truef(seg.Start == next,
			"line %d: segment %v does not start at column %d", n, seg, next)
		must.Truef(seg.Start < seg.End,
			"line %d: segment %v is empty", n, seg)
		next = seg.End
	}
	must.Truef(next == width+1,
		"line %d: segments end at column %d, want %d", n, next, width+1)
}
