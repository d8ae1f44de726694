// Package highlight applies rules to lines of text.
//
// Each line is decomposed into [Segment]s:
// contiguous, non-overlapping runs of columns
// that are either claimed by a single rule or left as gaps.
// Rules are considered in order,
// and earlier rules keep the columns they claim
// even if a later rule asks for them too.
//
// The output is suitable for direct concatenation into markup:
// the segments of a line are ordered left to right
// and cover every addressed column exactly once.
package highlight
