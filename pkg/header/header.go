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

// Package header writes classified test vectors as a C header.
package header

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/Pavel7004/goRspParser/pkg/vectors"
)

var ErrNoVectors = errors.New("no test vectors to write")

type Options struct {
	// Name is the C identifier prefix. Derived from Source when empty.
	Name   string
	Source string
}

type headerData struct {
	Name    string
	Guard   string
	Source  string
	Vectors []vectors.Vector
}

const headerTemplate = `/* Generated by rsp_parser from {{ .Source }}. DO NOT EDIT. */

#ifndef {{ .Guard }}
#define {{ .Guard }}

#include <stddef.h>

#ifndef RSP_OP_DEFINED
#define RSP_OP_DEFINED
enum rsp_op {
    RSP_OP_HASH = 1,
    RSP_OP_ENCRYPT = 2,
    RSP_OP_DECRYPT = 3,
};
#endif

struct {{ .Name }}_vector {
    const char *section;
    int count;
    long length;
    enum rsp_op op;
    size_t input_len;
    const char *input;
    size_t expected_len;
    const char *expected;
    size_t key_len;
    const char *key;
    size_t iv_len;
    const char *iv;
    size_t tag_len;
    const char *tag;
    size_t aad_len;
    const char *aad;
    size_t mac_len;
    const char *mac;
};

static const struct {{ .Name }}_vector {{ .Name }}_vectors[] = {
{{- range .Vectors }}
    { /* line {{ .Line }} */
        .section = {{ cstring .Section }},
        .count = {{ .Count }},
        .length = {{ .Length }},
        .op = {{ cop .Operation }},
        .input_len = {{ len .Input }}, .input = {{ cbytes .Input }},
        .expected_len = {{ len .Expected }}, .expected = {{ cbytes .Expected }},
        .key_len = {{ len .Key }}, .key = {{ cbytes .Key }},
        .iv_len = {{ len .IV }}, .iv = {{ cbytes .IV }},
        .tag_len = {{ len .Tag }}, .tag = {{ cbytes .Tag }},
        .aad_len = {{ len .AAD }}, .aad = {{ cbytes .AAD }},
        .mac_len = {{ len .MAC }}, .mac = {{ cbytes .MAC }},
    },
{{- end }}
};

static const size_t {{ .Name }}_vectors_count = sizeof({{ .Name }}_vectors) / sizeof({{ .Name }}_vectors[0]);

#endif /* {{ .Guard }} */
`

var tmpl = template.Must(template.New("header").Funcs(template.FuncMap{
	"cbytes":  cBytes,
	"cstring": cString,
	"cop":     cOperation,
}).Parse(headerTemplate))

func Generate(w io.Writer, opts Options, vecs []vectors.Vector) error {
	if len(vecs) == 0 {
		return ErrNoVectors
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(opts.Source), filepath.Ext(opts.Source))
	}
	name = Symbol(name)

	data := headerData{
		Name:    name,
		Guard:   strings.ToUpper(name) + "_VECTORS_H",
		Source:  filepath.Base(opts.Source),
		Vectors: vecs,
	}

	return errors.Wrap(tmpl.Execute(w, data), "execute header template")
}

// Symbol turns s into a lower case C identifier.
func Symbol(s string) string {
	var sb strings.Builder
	for i, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "rsp"
	}
	return sb.String()
}

func cBytes(b []byte) string {
	if b == nil {
		return "NULL"
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		fmt.Fprintf(&sb, "\\x%02x", c)
	}
	sb.WriteByte('"')
	return sb.String()
}

// cOperation maps Auto to hash, matching vectors.SectionOperation.
func cOperation(op vectors.Operation) string {
	switch op {
	case vectors.Encrypt:
		return "RSP_OP_ENCRYPT"
	case vectors.Decrypt:
		return "RSP_OP_DECRYPT"
	}
	return "RSP_OP_HASH"
}

func cString(s string) string {
	return fmt.Sprintf("%q", s)
}
