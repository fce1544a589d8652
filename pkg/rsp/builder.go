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
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Pavel7004/goRspParser/pkg/domain"
)

// builder classifies lines one at a time and assembles sections.
type builder struct {
	path  string
	merge bool
	log   logrus.FieldLogger

	secs []*domain.Section
	cur  *domain.Section
	rec  *domain.Record

	// cur was opened by a "[K = V]" header
	param bool
}

func newBuilder(path string, cfg config) *builder {
	return &builder{
		path:  path,
		merge: cfg.mergeHeaders,
		log:   cfg.logger,
		secs:  make([]*domain.Section, 0, 4),
		cur:   newSection("", 0),
	}
}

func newSection(name string, line int) *domain.Section {
	return &domain.Section{
		Name:    name,
		Line:    line,
		Records: make([]*domain.Record, 0, 8),
	}
}

func (b *builder) line(n int, raw string) error {
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	if n == 1 {
		raw = strings.TrimPrefix(raw, "\ufeff")
	}
	if !utf8.ValidString(raw) {
		return &IOError{Op: "decode", Path: b.path, Err: errors.Wrapf(ErrNotText, "line %d", n)}
	}

	b.log.WithField("line", n).Debugf("Read line %q", raw)

	text := strings.TrimSpace(raw)
	switch {
	case text == "":
		b.rec = nil
	case text[0] == '#':
	case text[0] == '[':
		return b.header(n, raw, text)
	default:
		return b.field(n, raw, text)
	}
	return nil
}

func (b *builder) header(n int, raw, text string) error {
	if !strings.HasSuffix(text, "]") {
		return b.fail(n, raw, ErrUnterminatedHeader)
	}

	key, value, isParam := strings.Cut(text[1:len(text)-1], "=")
	name := strings.TrimSpace(key)
	if name == "" {
		return b.fail(n, raw, ErrEmptySection)
	}
	value = strings.TrimSpace(value)

	if isParam && b.merge && b.param && len(b.cur.Records) == 0 {
		b.log.Debugf("Merging default %s into section %q", name, b.cur.Name)
		b.cur.Defaults = append(b.cur.Defaults, domain.Field{Key: name, Value: value, Line: n})
		return nil
	}

	b.closeSection()
	b.cur = newSection(name, n)
	b.param = isParam
	if isParam {
		b.cur.Defaults = []domain.Field{{Key: name, Value: value, Line: n}}
	}
	return nil
}

func (b *builder) field(n int, raw, text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return b.fail(n, raw, ErrNoSeparator)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return b.fail(n, raw, ErrEmptyKey)
	}
	if strings.ContainsAny(key, "[]#") {
		return b.fail(n, raw, ErrInvalidKey)
	}

	if b.rec == nil {
		b.rec = &domain.Record{Line: n}
		b.cur.Records = append(b.cur.Records, b.rec)
	}
	b.rec.Add(n, key, strings.TrimSpace(value))
	return nil
}

// closeSection drops the implicit section when nothing was read into it.
func (b *builder) closeSection() {
	b.rec = nil
	if b.cur.IsImplicit() && len(b.cur.Records) == 0 {
		return
	}
	b.secs = append(b.secs, b.cur)
}

func (b *builder) finish() []*domain.Section {
	b.closeSection()
	if len(b.secs) == 0 {
		b.secs = append(b.secs, newSection("", 0))
	}
	return b.secs
}

func (b *builder) fail(n int, raw string, err error) error {
	b.log.WithField("line", n).Debugf("Failed to classify line. err = %v", err)
	return &FormatError{Path: b.path, Line: n, Text: raw, Err: err}
}
