package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only ever yields whole newline-terminated lines, so a CSV
// parser reading a file that is still being written never sees half a
// record. A trailing partial line is held back until its newline arrives.
type lineReader struct {
	r *bufio.Reader
	// partial is an unterminated line read so far.
	partial []byte
	// pending is the rest of a complete line that did not fit in the
	// caller's buffer.
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

// NewLineReader wraps r. Reads return io.EOF whenever r has no complete
// line available; reading may resume once more data is written.
func NewLineReader(r io.Reader) io.Reader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) > 0 {
		n := copy(b, l.pending)
		l.pending = l.pending[:copy(l.pending, l.pending[n:])]
		return n, nil
	}
	data, err := l.r.ReadBytes('\n')
	if err != nil {
		l.partial = append(l.partial, data...)
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	line := data
	if len(l.partial) > 0 {
		line = append(l.partial, data...)
	}
	n := copy(b, line)
	l.pending = append(l.pending, line[n:]...)
	l.partial = l.partial[:0]
	return n, nil
}
