package flagvalue

import (
	"flag"
	"io"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that accepts both "-x" and "-x=value".
// With a value, it names a file to write to.
// Without one, output goes to a fallback writer, usually stderr.
//
//	fixedfile -debug data.txt layout.csv          # debug log to stderr
//	fixedfile -debug=debug.log data.txt layout.csv # debug log to debug.log
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the path stored in the flag,
// or "-" if the flag was passed without a value.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the path stored in the flag,
// or "-" if the flag was passed without a value.
func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag was set with any value.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Create opens the destination for this flag.
// The returned function must be called when the caller is done writing.
//
//   - flag not passed: [io.Discard]
//   - flag passed without a value: fallback
//   - flag passed with a value: the named file, truncated
func (fs *FileSwitch) Create(fallback io.Writer) (w io.Writer, close func() error, err error) {
	switch *fs {
	case "":
		return io.Discard, nopClose, nil
	case "-":
		return fallback, nopClose, nil
	default:
		f, err := os.Create(string(*fs))
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		return f, f.Close, nil
	}
}

func nopClose() error { return nil }
