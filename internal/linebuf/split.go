package linebuf

import "bytes"

// Split splits data into lines.
//
// Lines end with "\n" or "\r\n"; the terminator is not included.
// A final line without a terminator is kept,
// but a trailing terminator does not start a new, empty line.
// Empty input holds no lines.
//
// The returned lines share memory with data.
func Split(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			lines = append(lines, data)
			break
		}

		lines = append(lines, trimEOL(data[:idx+1]))
		data = data[idx+1:]
	}
	return lines
}

// trimEOL removes a trailing "\n" or "\r\n" from line.
func trimEOL(line []byte) []byte {
	line, ok := bytes.CutSuffix(line, []byte("\n"))
	if ok {
		line = bytes.TrimSuffix(line, []byte("\r"))
	}
	return line
}
