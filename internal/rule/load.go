package rule

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// Column names recognized in the syntax file header.
const (
	StartColumn     = "start"
	LengthColumn    = "length"
	FieldColumn     = "field"
	NameColumn      = "name"
	ConditionColumn = "condition"
)

// Loader loads a [RuleSet] from a CSV syntax file.
//
// The zero value is ready to use,
// and loads fixed-width rules.
type Loader struct {
	// Delimiter, if non-zero, indicates that the input is delimited
	// by this character rather than arranged in fixed columns.
	// Rules are then expected to address fields by index.
	Delimiter byte
}

// Load reads a fixed-width rule set from r.
// It's shorthand for a zero [Loader].
func Load(r io.Reader) (*RuleSet, error) {
	return errtrace.Wrap2(new(Loader).Load(r))
}

// Load reads a rule set from r.
//
// Rules are returned in the order they appear in the file.
// Loading stops at the first invalid row,
// and the error reports that row.
// Errors are one of [*MissingHeaderError], [*InvalidFieldError],
// [*InvalidRegexError], or [*SyntaxError].
func (l *Loader) Load(r io.Reader) (*RuleSet, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errtrace.Wrap(&MissingHeaderError{Column: l.required()[0]})
		}
		return nil, errtrace.Wrap(&SyntaxError{Row: 1, Err: err})
	}

	cols, err := l.resolveHeader(header)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	rs := RuleSet{Delimiter: l.Delimiter}
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errtrace.Wrap(&SyntaxError{Row: row, Err: err})
		}

		rule, err := cols.parse(row, record)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		rs.Rules = append(rs.Rules, rule)
	}

	return &rs, nil
}

func (l *Loader) required() []string {
	if l.Delimiter != 0 {
		return []string{FieldColumn, NameColumn}
	}
	return []string{StartColumn, LengthColumn, NameColumn}
}

// columns records the position of each known column in a row.
// Positions are -1 for columns that are absent.
type columns struct {
	start, length, field, name, condition int
}

func (l *Loader) resolveHeader(header []string) (*columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			// Spreadsheet exports sometimes lead with a byte order mark.
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	for _, name := range l.required() {
		if _, ok := index[name]; !ok {
			return nil, &MissingHeaderError{Column: name}
		}
	}

	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	cols := columns{
		name:      lookup(NameColumn),
		condition: lookup(ConditionColumn),
		start:     -1,
		length:    -1,
		field:     -1,
	}
	if l.Delimiter != 0 {
		cols.field = lookup(FieldColumn)
	} else {
		cols.start = lookup(StartColumn)
		cols.length = lookup(LengthColumn)
	}
	return &cols, nil
}

func (c *columns) parse(row int, record []string) (*Rule, error) {
	var (
		rule Rule
		err  error
	)
	if c.field >= 0 {
		rule.Field, err = positiveInt(row, FieldColumn, record[c.field])
		if err != nil {
			return nil, err
		}
	} else {
		rule.Start, err = positiveInt(row, StartColumn, record[c.start])
		if err != nil {
			return nil, err
		}

		rule.Length, err = positiveInt(row, LengthColumn, record[c.length])
		if err != nil {
			return nil, err
		}

		// The last column, Start+Length-1, and the column after it
		// must both fit in an int.
		if rule.Start > math.MaxInt-rule.Length {
			return nil, &InvalidFieldError{
				Row:    row,
				Column: LengthColumn,
				Value:  record[c.length],
				Reason: "start + length too large",
			}
		}
	}

	rule.Name = record[c.name]

	if c.condition >= 0 {
		if pattern := record[c.condition]; len(pattern) > 0 {
			rule.Condition, err = regexp.Compile(pattern)
			if err != nil {
				return nil, &InvalidRegexError{
					Row:     row,
					Pattern: pattern,
					Err:     err,
				}
			}
		}
	}

	return &rule, nil
}

func positiveInt(row int, column, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		reason := "not an integer"
		if errors.Is(err, strconv.ErrRange) {
			reason = "out of range"
		}
		return 0, &InvalidFieldError{
			Row:    row,
			Column: column,
			Value:  value,
			Reason: reason,
		}
	}

	if n < 1 {
		return 0, &InvalidFieldError{
			Row:    row,
			Column: column,
			Value:  value,
			Reason: "must be at least 1",
		}
	}
	return n, nil
}
