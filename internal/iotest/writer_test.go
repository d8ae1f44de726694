package iotest

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeT struct {
	testing.TB

	Buffer  bytes.Buffer
	cleanup []func()
}

func (t *fakeT) Logf(msg string, args ...any) {
	fmt.Fprintf(&t.Buffer, msg, args...)
	t.Buffer.WriteString("|")
}

func (t *fakeT) Cleanup(f func()) {
	t.cleanup = append(t.cleanup, f)
}

func (t *fakeT) runCleanup() {
	for i := len(t.cleanup) - 1; i >= 0; i-- {
		t.cleanup[i]()
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	fakeT := fakeT{TB: t}
	w := Writer(&fakeT)

	_, _ = io.WriteString(w, "Loading syntax file\nHighlighting ")
	assert.Equal(t, "Loading syntax file|", fakeT.Buffer.String())

	_, _ = io.WriteString(w, "2 lines\nRendering")
	assert.Equal(t, "Loading syntax file|Highlighting 2 lines|", fakeT.Buffer.String())

	fakeT.runCleanup()
	assert.Equal(t, "Loading syntax file|Highlighting 2 lines|Rendering|", fakeT.Buffer.String())
}
