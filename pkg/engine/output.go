package engine

import (
	"bytes"
	"strings"
)

// limitedBuffer collects writes up to a byte cap and silently discards the
// rest. Write never returns an error so a capped interpreter keeps running.
type limitedBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func newLimitedBuffer(maxBytes int) *limitedBuffer {
	return &limitedBuffer{max: maxBytes}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	n := len(p)

	if b.buf.Len() >= b.max {
		b.truncated = true
		return n, nil
	}

	if remaining := b.max - b.buf.Len(); len(p) > remaining {
		p = p[:remaining]
		b.truncated = true
	}

	b.buf.Write(p)

	return n, nil
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}

// lastLine returns the last non-empty line of s with surrounding whitespace
// trimmed. Interpreter tracebacks put the error summary on the final line.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}

	return ""
}
