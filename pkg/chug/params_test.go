package chug

import (
	"bytes"
	"testing"

	"github.com/saylorsolutions/chug/pkg/chug/padding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_RoundTrip(t *testing.T) {
	tests := map[string]Params{
		"None":           {Scheme: SchemeNone},
		"Length":         {Scheme: SchemeLengthPrefixed, BlockSize: 32},
		"Zero":           {Scheme: SchemeZeroSuffixed, BlockSize: 4096},
		"Zero min block": {Scheme: SchemeZeroSuffixed, BlockSize: 2},
	}
	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, params.Write(&buf))
			assert.Equal(t, 11, buf.Len())

			var read Params
			require.NoError(t, read.Read(&buf))
			assert.Equal(t, params, read)

			c, err := read.Cipher()
			require.NoError(t, err)
			described, err := ParamsOf(c)
			require.NoError(t, err)
			assert.Equal(t, params, described)
		})
	}
}

func TestParams_RecreatedCipherDecrypts(t *testing.T) {
	key := []byte("a key")
	alg, err := padding.NewZeroSuffixed(8)
	require.NoError(t, err)
	c, err := New(WithPadding(alg))
	require.NoError(t, err)
	encrypted, err := c.Encrypt([]byte("some data"), key)
	require.NoError(t, err)

	params, err := ParamsOf(c)
	require.NoError(t, err)
	recreated, err := params.Cipher()
	require.NoError(t, err)
	decrypted, err := recreated.Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "some data", string(decrypted))
}

func TestParams_Neg(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Params{Scheme: SchemeLengthPrefixed, BlockSize: 1}.Write(&buf), padding.ErrInvalidBlockSize)
	assert.ErrorIs(t, Params{Scheme: Scheme(9), BlockSize: 4}.Write(&buf), ErrUnsupportedScheme)
	assert.Equal(t, 0, buf.Len())

	var p Params
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{paramsMagic})), ErrInvalidHeader)
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})), ErrInvalidHeader)
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{paramsMagic, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0})), ErrInvalidHeader)
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{paramsMagic, 1, 9, 0, 0, 0, 0, 0, 0, 0, 4})), ErrInvalidHeader)
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{paramsMagic, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1})), ErrInvalidHeader)
	assert.ErrorIs(t, p.Read(bytes.NewReader([]byte{paramsMagic, 1, 1, 0xff, 0, 0, 0, 0, 0, 0, 1})), ErrInvalidHeader)

	_, err := Params{Scheme: Scheme(9)}.Cipher()
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
	_, err = Params{Scheme: SchemeZeroSuffixed, BlockSize: 0}.Cipher()
	assert.ErrorIs(t, err, padding.ErrInvalidBlockSize)

	c, err := New(WithPadding(nil))
	require.NoError(t, err)
	_, err = ParamsOf(c)
	assert.ErrorIs(t, err, ErrMissingPadding)
}

func TestParseScheme(t *testing.T) {
	for _, scheme := range []Scheme{SchemeNone, SchemeLengthPrefixed, SchemeZeroSuffixed} {
		parsed, err := ParseScheme(scheme.String())
		assert.NoError(t, err)
		assert.Equal(t, scheme, parsed)
	}
	parsed, err := ParseScheme(" Zero ")
	assert.NoError(t, err)
	assert.Equal(t, SchemeZeroSuffixed, parsed)

	_, err = ParseScheme("pkcs7")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
	assert.Equal(t, "Scheme(9)", Scheme(9).String())
}
