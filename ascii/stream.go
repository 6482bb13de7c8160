package ascii

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineStream reads lines from an io.Reader and supports rewinding to a
// marked position.
//
// While at least one mark is held, every line read from the source is kept
// in buf so that restore can replay it. Without marks, lines that have been
// replayed are dropped again.
type lineStream struct {
	src   *bufio.Reader
	buf   []string
	pos   int
	marks int
	eof   bool
	err   error
}

func newLineStream(r io.Reader) *lineStream {
	return &lineStream{src: bufio.NewReader(r)}
}

// next returns the next line without its line terminator. ok is false at the
// end of the stream.
func (s *lineStream) next() (line string, ok bool, err error) {
	if s.pos < len(s.buf) {
		line = s.buf[s.pos]
		s.pos++
		if s.marks == 0 && s.pos == len(s.buf) {
			s.buf, s.pos = s.buf[:0], 0
		}
		return line, true, nil
	}
	if s.err != nil {
		return "", false, s.err
	}
	if s.eof {
		return "", false, nil
	}

	raw, err := s.src.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
			return "", false, err
		}
		s.eof = true
		if raw == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	if s.marks > 0 {
		s.buf = append(s.buf, line)
		s.pos++
	}
	return line, true, nil
}

// mark records the current position and returns the function restoring it.
// Callers defer the returned function so that the position is restored on
// every exit path:
//
//	defer s.mark()()
func (s *lineStream) mark() (restore func()) {
	saved := s.pos
	s.marks++
	return func() {
		s.pos = saved
		s.marks--
		if s.marks == 0 && s.pos == len(s.buf) {
			s.buf, s.pos = s.buf[:0], 0
		}
	}
}
