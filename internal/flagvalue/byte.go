package flagvalue

import (
	"flag"
	"strconv"

	"braces.dev/errtrace"
)

// Byte is a flag that accepts a single byte.
//
// Besides a literal character, it accepts the names "tab", "space",
// and Go escape sequences like `\t` or `\x1f`
// so that awkward separators can be passed on the command line.
//
// The zero value means the flag was not set.
type Byte byte

var _ flag.Getter = (*Byte)(nil)

var _byteNames = map[string]byte{
	"tab":   '\t',
	"space": ' ',
	"comma": ',',
	"pipe":  '|',
}

// Get returns the byte stored in the flag.
func (b *Byte) Get() any { return byte(*b) }

// String returns the byte as a quoted Go character,
// or an empty string if it wasn't set.
func (b Byte) String() string {
	if b == 0 {
		return ""
	}
	return strconv.QuoteRuneToASCII(rune(b))
}

// Set receives the value for this flag.
func (b *Byte) Set(s string) error {
	if c, ok := _byteNames[s]; ok {
		*b = Byte(c)
		return nil
	}

	if len(s) > 1 && s[0] == '\\' {
		v, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return errtrace.Errorf("invalid escape sequence %q: %w", s, err)
		}
		if len(tail) > 0 || v == 0 || v > 0xff {
			return errtrace.Errorf("%q is not a single byte", s)
		}
		*b = Byte(v)
		return nil
	}

	if len(s) != 1 {
		return errtrace.Errorf("%q is not a single byte", s)
	}
	if s[0] == 0 {
		return errtrace.Errorf("NUL is not allowed")
	}
	*b = Byte(s[0])
	return nil
}
