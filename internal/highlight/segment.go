package highlight

import "fmt"

const (
	// NoRule is the rule index of a gap segment.
	NoRule = -1

	// NoColor is the colour index of a gap segment.
	NoColor = -1
)

// Segment is a run of columns on a line
// that is either highlighted by a single rule or not highlighted at all.
type Segment struct {
	// Start and End are 1-based column positions
	// bounding the half-open range [Start, End).
	Start, End int

	// Rule is the index of the rule that claimed these columns
	// in the rule set, or NoRule if this is a gap.
	Rule int

	// Name of the rule that claimed these columns.
	// Empty for gaps.
	Name string

	// Color is the index of this segment's colour in the palette,
	// or NoColor if this is a gap.
	Color int
}

// IsGap reports whether this segment is not highlighted.
func (s Segment) IsGap() bool { return s.Rule == NoRule }

// Len reports the number of columns in this segment.
func (s Segment) Len() int { return s.End - s.Start }

// Text returns the portion of the line covered by this segment.
// Columns past the end of the line are absent,
// so the result may be shorter than the segment, or empty.
func (s Segment) Text(line []byte) []byte {
	start, end := min(s.Start-1, len(line)), min(s.End-1, len(line))
	return line[start:end]
}

func (s Segment) String() string {
	if s.IsGap() {
		return fmt.Sprintf("[%d, %d)", s.Start, s.End)
	}
	return fmt.Sprintf("[%d, %d) %q", s.Start, s.End, s.Name)
}

// Line is a line of input and its decomposition into segments.
type Line struct {
	// Number is the 1-based position of this line in the input.
	Number int

	// Text is the raw contents of the line,
	// without the trailing newline.
	Text []byte

	// Segments of the line, ordered left to right.
	Segments []Segment
}
