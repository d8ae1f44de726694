package rule

import (
	"fmt"
)

// MissingHeaderError indicates that the header row of a syntax file
// is missing a required column.
type MissingHeaderError struct {
	Column string // name of the missing column
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("syntax header is missing required column %q", e.Column)
}

// InvalidFieldError indicates that a cell in a syntax file row
// does not hold an acceptable value.
type InvalidFieldError struct {
	Row    int    // 1-based row number; the header is row 1
	Column string // name of the column
	Value  string // offending cell contents
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("row %d: column %q: invalid value %q: %v",
		e.Row, e.Column, e.Value, e.Reason)
}

// InvalidRegexError indicates that a condition in a syntax file
// is not a valid regular expression.
type InvalidRegexError struct {
	Row     int // 1-based row number; the header is row 1
	Pattern string
	Err     error
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("row %d: bad condition %q: %v", e.Row, e.Pattern, e.Err)
}

func (e *InvalidRegexError) Unwrap() error { return e.Err }

// SyntaxError indicates that a syntax file is not well-formed CSV.
type SyntaxError struct {
	Row int // 1-based row number, or zero if unknown
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed syntax file: %v", e.Err)
	}
	return fmt.Sprintf("row %d: malformed syntax file: %v", e.Row, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
