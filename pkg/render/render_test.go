package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/Pavel7004/goRspParser/pkg/domain"
	"github.com/Pavel7004/goRspParser/pkg/render"
	"github.com/Pavel7004/goRspParser/pkg/rsp"
)

const sample = `# CAVS 11.0
[L = 20]
# comment
Msg = abcd
MD = 1234abcd

Msg = ef01
MD = 5678ef01
`

var ignoreLines = []cmp.Option{
	cmpopts.IgnoreFields(domain.Section{}, "Line"),
	cmpopts.IgnoreFields(domain.Record{}, "Line"),
	cmpopts.IgnoreFields(domain.Field{}, "Line"),
}

func parse(t *testing.T, text string, opts ...rsp.Option) []*domain.Section {
	t.Helper()
	secs, err := rsp.ParseReader("test.rsp", strings.NewReader(text), opts...)
	assert.NilError(t, err)
	return secs
}

func dump(t *testing.T, secs []*domain.Section, f render.Format) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NilError(t, render.Render(&buf, secs, f))
	return buf.String()
}

func TestRender_Text(t *testing.T) {
	got := dump(t, parse(t, sample), render.Text)

	want := `section "L" line 2
  default L = 20
  record 1 line 4
    field Msg = abcd
    field MD = 1234abcd
  record 2 line 7
    field Msg = ef01
    field MD = 5678ef01
`
	assert.Equal(t, got, want)
}

func TestRender_TextUnnamed(t *testing.T) {
	got := dump(t, parse(t, "# nothing here\n"), render.Text)
	assert.Equal(t, got, "section (unnamed)\n")
}

func TestRender_RSP(t *testing.T) {
	got := dump(t, parse(t, "a = 1\n[ENCRYPT]\nKEY = 00\nIV =\n\nKEY = 01\n"), render.RSP)

	want := `a = 1

[ENCRYPT]

KEY = 00
IV =

KEY = 01
`
	assert.Equal(t, got, want)
}

func TestRender_RSPRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []rsp.Option
	}{
		{name: "section default", input: sample},
		{name: "no headers", input: "Count = 0\nMsg = 00\n\nCount = 1\nMsg =\n"},
		{name: "comments only", input: "# a\n\n# b\n"},
		{name: "mixed", input: "x = 1\n[ENCRYPT]\n\nKEY = 00\n[DECRYPT]\n[L = 8]\nMsg = ab\n"},
		{
			name:  "merged headers",
			input: "[PRF=CMAC_AES128]\n[RLEN=8_BITS]\nCOUNT=0\nKO = ab\n",
			opts:  []rsp.Option{rsp.WithMergeHeaders(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := parse(t, tt.input, tt.opts...)
			second := parse(t, dump(t, first, render.RSP), tt.opts...)
			assert.DeepEqual(t, first, second, ignoreLines...)
		})
	}
}

func TestRender_JSON(t *testing.T) {
	out := dump(t, parse(t, sample), render.JSON)

	var doc struct {
		Sections []*domain.Section `json:"sections"`
	}
	assert.NilError(t, json.Unmarshal([]byte(out), &doc))
	assert.DeepEqual(t, doc.Sections, parse(t, sample))
}

func TestRender_TOML(t *testing.T) {
	out := dump(t, parse(t, sample), render.TOML)

	var doc struct {
		Sections []*domain.Section `toml:"sections"`
	}
	_, err := toml.Decode(out, &doc)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(doc.Sections, 1))
	assert.Equal(t, doc.Sections[0].Name, "L")
	assert.Assert(t, is.Len(doc.Sections[0].Records, 2))
	v, _ := doc.Sections[0].Records[1].Get("MD")
	assert.Equal(t, v, "5678ef01")
}

func TestRender_YAMLAndSpew(t *testing.T) {
	secs := parse(t, sample)

	out := dump(t, secs, render.YAML)
	assert.Assert(t, is.Contains(out, "name: L"))
	assert.Assert(t, is.Contains(out, "value: 1234abcd"))

	out = dump(t, secs, render.Spew)
	assert.Assert(t, is.Contains(out, `"5678ef01"`))
}

func TestParseFormat(t *testing.T) {
	f, err := render.ParseFormat("YAML")
	assert.NilError(t, err)
	assert.Equal(t, f, render.YAML)

	_, err = render.ParseFormat("xml")
	assert.Assert(t, errors.Is(err, render.ErrUnknownFormat))
	assert.ErrorContains(t, err, "text, rsp, json, yaml, toml, spew")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := render.Render(&bytes.Buffer{}, nil, render.Format("xml"))
	assert.Assert(t, errors.Is(err, render.ErrUnknownFormat))
}
