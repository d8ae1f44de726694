// Package rule defines highlighting rules
// and loads them from CSV syntax files.
//
// A syntax file is a CSV document with a header row.
// For fixed-width input, the header must name the columns
// start, length, and name, and may name a condition column.
// For delimited input (see [Loader.Delimiter]),
// the header must name field and name instead of start and length.
//
//	start,length,name,condition
//	1,3,Record type,
//	4,8,Account,^ACC
//
// Rules are ordered.
// Earlier rules take precedence over later ones
// when they highlight the same columns.
package rule

import (
	"bytes"
	"regexp"
)

// Rule is a named range of columns,
// optionally restricted to lines matching a condition.
type Rule struct {
	// Start is the 1-based column at which this rule begins.
	// Zero for rules on delimited input.
	Start int

	// Length is the number of columns covered by this rule.
	// Zero for rules on delimited input.
	Length int

	// Field is the 1-based field index for rules on delimited input.
	// Zero for fixed-width rules.
	Field int

	// Name is the human-readable name of this field.
	Name string

	// Condition restricts this rule to lines that match it.
	// If nil, the rule applies to all lines.
	Condition *regexp.Regexp
}

// AppliesTo reports whether this rule should be considered for the line.
func (r *Rule) AppliesTo(line []byte) bool {
	return r.Condition == nil || r.Condition.Match(line)
}

// Span reports the 0-based, half-open byte range [start, end)
// this rule requests on the given line.
//
// For fixed-width rules, the range does not depend on the line
// and may extend past its end.
// For delimited rules, the range covers the requested field
// without its surrounding delimiters.
// ok is false if the line does not have that many fields.
func (r *Rule) Span(line []byte, delim byte) (start, end int, ok bool) {
	if r.Field == 0 {
		start = r.Start - 1
		return start, start + r.Length, true
	}
	return fieldSpan(line, delim, r.Field)
}

func fieldSpan(line []byte, delim byte, field int) (start, end int, ok bool) {
	// Skip the delimiters preceding the field.
	for n := 1; n < field; n++ {
		idx := bytes.IndexByte(line[start:], delim)
		if idx < 0 {
			return 0, 0, false
		}
		start += idx + 1
	}

	end = len(line)
	if idx := bytes.IndexByte(line[start:], delim); idx >= 0 {
		end = start + idx
	}
	return start, end, true
}

// RuleSet is an ordered list of rules.
// Rules earlier in the list take precedence.
//
// A RuleSet must not be modified after it has been loaded.
type RuleSet struct {
	Rules []*Rule

	// Delimiter separates fields on delimited input.
	// It is zero if the rules are fixed-width.
	Delimiter byte
}

// Len reports the number of rules in the set.
// It is safe to call on a nil RuleSet.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rules)
}

// Delimited reports whether the rules address delimited fields
// rather than fixed columns.
func (rs *RuleSet) Delimited() bool {
	return rs != nil && rs.Delimiter != 0
}
