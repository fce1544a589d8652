/*
Copyright © 2023 Kovalev Pavel kovalev5690@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/package rsp

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"

	"github.com/Pavel7004/goRspParser/pkg/domain"
)

// Reader reads the sections of a single RSP file.
type Reader struct {
	Filename string

	cfg    config
	reader *bufio.Reader
	file   *os.File
}

func NewReader(filename string, opts ...Option) *Reader {
	return &Reader{
		Filename: filename,
		cfg:      newConfig(opts),
	}
}

func (r *Reader) Open() error {
	f, err := os.Open(r.Filename)
	if err != nil {
		return &IOError{Op: "open", Path: r.Filename, Err: unwrapPath(err)}
	}
	r.reader = bufio.NewReader(f)
	r.file = f
	return nil
}

func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.reader = nil
	return err
}

func (r *Reader) ReadSections() ([]*domain.Section, error) {
	return r.ReadSectionsContext(context.Background())
}

// ReadSectionsContext reads the remaining input. When ctx is done the
// partial result is discarded and the context error returned.
func (r *Reader) ReadSectionsContext(ctx context.Context) ([]*domain.Section, error) {
	if r.reader == nil {
		return nil, &IOError{Op: "read", Path: r.Filename, Err: os.ErrClosed}
	}

	b := newBuilder(r.Filename, r.cfg)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		buff, err := r.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			r.cfg.logger.Debugf("Failed to read from %s. err = %v", r.Filename, err)
			return nil, &IOError{Op: "read", Path: r.Filename, Err: unwrapPath(err)}
		}

		if len(buff) != 0 {
			if lerr := b.line(n, buff); lerr != nil {
				return nil, lerr
			}
		}

		if err != nil {
			break
		}
	}

	return b.finish(), nil
}

// Parse reads every section of the RSP file at path.
func Parse(path string, opts ...Option) ([]*domain.Section, error) {
	return ParseContext(context.Background(), path, opts...)
}

func ParseContext(ctx context.Context, path string, opts ...Option) ([]*domain.Section, error) {
	r := NewReader(path, opts...)
	if err := r.Open(); err != nil {
		return nil, err
	}
	defer r.Close()

	return r.ReadSectionsContext(ctx)
}

// ParseReader parses RSP text from in. name is only used in errors.
func ParseReader(name string, in io.Reader, opts ...Option) ([]*domain.Section, error) {
	r := NewReader(name, opts...)
	r.reader = bufio.NewReader(in)
	return r.ReadSections()
}

// unwrapPath drops the *fs.PathError layer; IOError already names the path.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
