package rsp

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnterminatedHeader = errors.New("section header is not terminated by ']'")
	ErrEmptySection       = errors.New("section header has no name")
	ErrEmptyKey           = errors.New("field has no key")
	ErrInvalidKey         = errors.New("field key contains a reserved character")
	ErrNoSeparator        = errors.New("line is not a comment, header or key = value pair")
	ErrNotText            = errors.New("input is not valid UTF-8 text")
)

// IOError is returned when the input cannot be opened, read or decoded.
type IOError struct {
	Op   string // open, read, decode
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FormatError is returned for a line that matches no production of the
// RSP grammar. Line is 1-based and Text is the raw line.
type FormatError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
