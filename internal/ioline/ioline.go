// Package ioline is the line-oriented I/O collaborator used by the
// trainer: a reader that yields whole input lines of any length and a
// printer that forwards formatted lines to a pluggable sink.
//
// Both directions go through callbacks so embedders can substitute their
// own transport (an in-memory corpus, a network stream) without the rest
// of the code knowing.
package ioline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// GetsFunc returns the next input line with any trailing newline removed.
// It reports false when the input is exhausted.
type GetsFunc func() (string, bool)

// WriteFunc receives one formatted output line.
type WriteFunc func(line string)

// Lines couples a line source with a line sink.
type Lines struct {
	gets  GetsFunc
	write WriteFunc
	err   error
}

// New creates a Lines backed by a reader and a writer. Either side may
// be nil if only one direction is used.
func New(r io.Reader, w io.Writer) *Lines {
	l := &Lines{}
	if r != nil {
		br := bufio.NewReader(r)
		l.gets = func() (string, bool) {
			line, err := br.ReadString('\n')
			if err != nil && err != io.EOF {
				l.err = errors.Wrap(err, "ioline: read")
				return "", false
			}
			if line == "" {
				return "", false
			}
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			return line, true
		}
	}
	if w != nil {
		l.write = func(line string) {
			if _, err := io.WriteString(w, line); err != nil && l.err == nil {
				l.err = errors.Wrap(err, "ioline: write")
			}
		}
	}
	return l
}

// NewFunc creates a Lines from raw callbacks. This is the interop path:
// the caller owns both the source and the sink.
func NewFunc(gets GetsFunc, write WriteFunc) *Lines {
	return &Lines{gets: gets, write: write}
}

// Gets returns the next line, or ("", false) once the input is exhausted
// or a read error occurred. Check Err after the last line.
func (l *Lines) Gets() (string, bool) {
	if l.gets == nil {
		return "", false
	}
	return l.gets()
}

// Printf formats a line and hands it to the write side. The format
// string should include its own newline when one is wanted, matching
// fmt.Fprintf semantics.
func (l *Lines) Printf(format string, args ...any) {
	if l.write == nil {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Err returns the first I/O error encountered, if any.
func (l *Lines) Err() error {
	return l.err
}
