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

// Package vectors turns parsed RSP records into typed test vectors.
package vectors

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Pavel7004/goRspParser/pkg/domain"
)

type Operation int

const (
	// Auto picks the operation from the section name.
	Auto Operation = iota
	Hash
	Encrypt
	Decrypt
)

var ErrUnknownOperation = errors.New("unknown operation")

func (op Operation) String() string {
	switch op {
	case Hash:
		return "hash"
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	}
	return "auto"
}

func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "hash":
		return Hash, nil
	case "encrypt":
		return Encrypt, nil
	case "decrypt":
		return Decrypt, nil
	}
	return Auto, errors.Wrapf(ErrUnknownOperation, "%q", s)
}

// Vector is one classified test vector. Length is the message length in
// bits for hash vectors and -1 when the record has no Len field.
type Vector struct {
	Operation Operation
	Section   string
	Line      int
	Count     int
	Length    int

	Input    []byte
	Expected []byte
	Key      []byte
	IV       []byte
	Tag      []byte
	AAD      []byte
	MAC      []byte
}

func (v *Vector) HasKey() bool { return v.Key != nil }
func (v *Vector) HasIV() bool  { return v.IV != nil }
func (v *Vector) HasTag() bool { return v.Tag != nil }
func (v *Vector) HasAAD() bool { return v.AAD != nil }

// FieldError reports a field whose value does not fit its kind.
type FieldError struct {
	Line int
	Key  string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type kind int

const (
	kindInput kind = iota
	kindOutput
	kindKey
	kindIV
	kindTag
	kindAAD
	kindMAC
	kindLength
	kindCount
)

type mapping struct {
	key  string
	kind kind
	op   Operation // Auto applies to every operation
}

var keyMap = []mapping{
	{"Len", kindLength, Hash},
	{"Msg", kindInput, Hash},
	{"MD", kindOutput, Hash},
	{"Output", kindOutput, Hash},
	{"PLAINTEXT", kindInput, Encrypt},
	{"CIPHERTEXT", kindOutput, Encrypt},
	{"CIPHERTEXT", kindInput, Decrypt},
	{"PLAINTEXT", kindOutput, Decrypt},
	{"PT", kindInput, Encrypt},
	{"CT", kindOutput, Encrypt},
	{"Payload", kindInput, Encrypt},
	{"CT", kindInput, Decrypt},
	{"PT", kindOutput, Decrypt},
	{"Payload", kindOutput, Decrypt},
	{"Key", kindKey, Auto},
	{"KEY", kindKey, Auto},
	{"IV", kindIV, Auto},
	{"Tag", kindTag, Auto},
	{"AAD", kindAAD, Auto},
	{"Adata", kindAAD, Auto},
	{"Mac", kindMAC, Auto},
	{"MAC", kindMAC, Auto},
	{"COUNT", kindCount, Auto},
	{"Count", kindCount, Auto},
}

func lookupKind(key string, op Operation) (kind, bool) {
	for _, m := range keyMap {
		if m.key == key && (m.op == Auto || m.op == op) {
			return m.kind, true
		}
	}
	return 0, false
}

// SectionOperation picks the operation implied by a section name.
func SectionOperation(sec *domain.Section) Operation {
	switch strings.ToUpper(sec.Name) {
	case "ENCRYPT":
		return Encrypt
	case "DECRYPT":
		return Decrypt
	}
	return Hash
}

// Classify converts every record holding an input or an expected output.
// An op other than Auto overrides the section names.
func Classify(secs []*domain.Section, op Operation) ([]Vector, error) {
	vecs := make([]Vector, 0, 16)
	for _, sec := range secs {
		secOp := op
		if secOp == Auto {
			secOp = SectionOperation(sec)
		}
		for _, rec := range sec.Records {
			v, err := classifyRecord(rec, secOp)
			if err != nil {
				return nil, errors.Wrapf(err, "section %q", sec.Name)
			}
			if v.Input == nil && v.Expected == nil {
				continue
			}
			v.Section = sec.Name
			vecs = append(vecs, v)
		}
	}
	return vecs, nil
}

func classifyRecord(rec *domain.Record, op Operation) (Vector, error) {
	v := Vector{Operation: op, Line: rec.Line, Length: -1}

	for _, f := range rec.Fields {
		k, ok := lookupKind(f.Key, op)
		if !ok {
			continue
		}

		if k == kindLength || k == kindCount {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return v, &FieldError{Line: fieldLine(rec, f), Key: f.Key, Err: err}
			}
			if k == kindLength {
				v.Length = n
			} else {
				v.Count = n
			}
			continue
		}

		b, err := hex.DecodeString(f.Value)
		if err != nil {
			return v, &FieldError{Line: fieldLine(rec, f), Key: f.Key, Err: err}
		}
		switch k {
		case kindInput:
			v.Input = b
		case kindOutput:
			v.Expected = b
		case kindKey:
			v.Key = b
		case kindIV:
			v.IV = b
		case kindTag:
			v.Tag = b
		case kindAAD:
			v.AAD = b
		case kindMAC:
			v.MAC = b
		}
	}

	// NIST writes the empty message as "Msg = 00" with Len = 0.
	if v.Length == 0 && v.Input != nil {
		v.Input = []byte{}
	}
	return v, nil
}

func fieldLine(rec *domain.Record, f domain.Field) int {
	if f.Line != 0 {
		return f.Line
	}
	return rec.Line
}
