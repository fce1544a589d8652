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
*/

// Package render writes parsed RSP sections in one of several dump formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Pavel7004/goRspParser/pkg/domain"
)

type Format string

const (
	Text Format = "text"
	RSP  Format = "rsp"
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	Spew Format = "spew"
)

var ErrUnknownFormat = errors.New("unknown output format")

func Formats() []Format {
	return []Format{Text, RSP, JSON, YAML, TOML, Spew}
}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", s, strings.Join(names, ", "))
}

// document is the top level value for the structured encoders; toml
// cannot encode a bare array.
type document struct {
	Sections []*domain.Section `json:"sections" yaml:"sections" toml:"sections"`
}

func Render(w io.Writer, secs []*domain.Section, f Format) error {
	switch f {
	case Text, "":
		return renderText(w, secs)
	case RSP:
		return renderRSP(w, secs)
	case JSON:
		data, err := json.MarshalIndent(document{Sections: secs}, "", "  ")
		if err != nil {
			return errors.Wrap(err, "json")
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Sections: secs}); err != nil {
			return errors.Wrap(err, "yaml")
		}
		return enc.Close()
	case TOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(document{Sections: secs}), "toml")
	case Spew:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(w, secs)
		return nil
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
}

func renderText(w io.Writer, secs []*domain.Section) error {
	ew := &errWriter{w: w}
	for _, sec := range secs {
		if sec.IsImplicit() {
			ew.printf("section (unnamed)\n")
		} else {
			ew.printf("section %q line %d\n", sec.Name, sec.Line)
		}
		for _, d := range sec.Defaults {
			ew.printf("  default %s = %s\n", d.Key, d.Value)
		}
		for i, rec := range sec.Records {
			ew.printf("  record %d line %d\n", i+1, rec.Line)
			for _, f := range rec.Fields {
				ew.printf("    field %s = %s\n", f.Key, f.Value)
			}
		}
	}
	return ew.err
}

// renderRSP writes sections back in RSP syntax. Comments and the source
// blank line placement are not reproduced.
func renderRSP(w io.Writer, secs []*domain.Section) error {
	ew := &errWriter{w: w}
	for i, sec := range secs {
		if i > 0 {
			ew.printf("\n")
		}
		if !sec.IsImplicit() {
			if len(sec.Defaults) == 0 {
				ew.printf("[%s]\n", sec.Name)
			}
			for _, d := range sec.Defaults {
				ew.printf("[%s = %s]\n", d.Key, d.Value)
			}
			ew.printf("\n")
		}
		for j, rec := range sec.Records {
			if j > 0 {
				ew.printf("\n")
			}
			for _, f := range rec.Fields {
				ew.printf("%s\n", field(f))
			}
		}
	}
	return ew.err
}

func field(f domain.Field) string {
	if f.Value == "" {
		return f.Key + " ="
	}
	return f.Key + " = " + f.Value
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
