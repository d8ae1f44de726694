// Package iotest provides IO helpers for tests.
package iotest

import (
	"io"
	"testing"

	"go.abhg.dev/fixedfile/internal/linebuf"
)

// Writer builds an io.Writer that logs each line written to it
// to the given testing.TB.
// A trailing partial line is logged when the test finishes.
func Writer(t testing.TB) io.Writer {
	w, done := linebuf.Writer(func(line []byte) {
		t.Logf("%s", line)
	})
	t.Cleanup(done)
	return w
}
