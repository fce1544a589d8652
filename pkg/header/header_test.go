package header_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/Pavel7004/goRspParser/pkg/header"
	"github.com/Pavel7004/goRspParser/pkg/rsp"
	"github.com/Pavel7004/goRspParser/pkg/vectors"
)

func TestGenerate_Hash(t *testing.T) {
	secs, err := rsp.ParseReader("SHA1ShortMsg.rsp", strings.NewReader("[L = 20]\n\nLen = 0\nMsg = 00\nMD = da39\n\nLen = 8\nMsg = 36\nMD = c1df\n"))
	assert.NilError(t, err)
	vecs, err := vectors.Classify(secs, vectors.Auto)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, header.Generate(&buf, header.Options{Source: "testdata/SHA1ShortMsg.rsp"}, vecs))
	out := buf.String()

	assert.Assert(t, is.Contains(out, "from SHA1ShortMsg.rsp. DO NOT EDIT."))
	assert.Assert(t, is.Contains(out, "#ifndef SHA1SHORTMSG_VECTORS_H"))
	assert.Assert(t, is.Contains(out, "struct sha1shortmsg_vector {"))
	assert.Assert(t, is.Contains(out, "static const struct sha1shortmsg_vector sha1shortmsg_vectors[] = {"))
	assert.Assert(t, is.Contains(out, `.input_len = 0, .input = "",`))
	assert.Assert(t, is.Contains(out, `.input_len = 1, .input = "\x36",`))
	assert.Assert(t, is.Contains(out, `.expected_len = 2, .expected = "\xda\x39",`))
	assert.Assert(t, is.Contains(out, `.key_len = 0, .key = NULL,`))
	assert.Assert(t, is.Contains(out, `.section = "L",`))
	assert.Equal(t, strings.Count(out, "/* line "), 2)
	assert.Equal(t, strings.Count(out, ".op = RSP_OP_HASH,"), 2)
	assert.Assert(t, strings.HasSuffix(out, "#endif /* SHA1SHORTMSG_VECTORS_H */\n"))
}

func TestGenerate_CipherWithName(t *testing.T) {
	vecs := []vectors.Vector{
		{Operation: vectors.Encrypt, Section: "ENCRYPT", Length: -1, Key: []byte{0, 1}, Input: []byte{0xaa}, Expected: []byte{0xbb}},
		{Operation: vectors.Decrypt, Section: "DECRYPT", Length: -1, Key: []byte{0, 1}, Input: []byte{0xbb}, Expected: []byte{0xaa}},
	}

	var buf bytes.Buffer
	assert.NilError(t, header.Generate(&buf, header.Options{Name: "aes-cbc 128", Source: "x.rsp"}, vecs))
	out := buf.String()

	assert.Assert(t, is.Contains(out, "aes_cbc_128_vectors[]"))
	assert.Assert(t, is.Contains(out, "    enum rsp_op op;\n"))
	assert.Equal(t, strings.Count(out, ".op = RSP_OP_ENCRYPT,"), 1)
	assert.Equal(t, strings.Count(out, ".op = RSP_OP_DECRYPT,"), 1)
	assert.Equal(t, strings.Count(out, ".op = RSP_OP_HASH,"), 0)
	assert.Assert(t, is.Contains(out, `.key_len = 2, .key = "\x00\x01",`))
}

func TestGenerate_NoVectors(t *testing.T) {
	err := header.Generate(&bytes.Buffer{}, header.Options{Source: "x.rsp"}, nil)
	assert.Assert(t, errors.Is(err, header.ErrNoVectors))
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SHA256ShortMsg", "sha256shortmsg"},
		{"CBCGFSbox128", "cbcgfsbox128"},
		{"aes-cbc", "aes_cbc"},
		{"3des", "_3des"},
		{"", "rsp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, header.Symbol(tt.input), tt.expected)
		})
	}
}
