package padding

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(length int) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = byte(i*7 + 1)
	}
	return data
}

func zeroSource(length int) RandomSource {
	return ReaderSource(bytes.NewReader(make([]byte, length)))
}

func TestNew_InvalidBlockSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		_, err := NewLengthPrefixed(size)
		assert.ErrorIs(t, err, ErrInvalidBlockSize)
		_, err = NewZeroSuffixed(size)
		assert.ErrorIs(t, err, ErrInvalidBlockSize)
	}

	_, err := NewZeroSuffixed(4, WithRandomSource(nil))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetBlockSize(t *testing.T) {
	algs := []Algorithm{}
	lp, err := NewLengthPrefixed(2)
	require.NoError(t, err)
	zs, err := NewZeroSuffixed(2)
	require.NoError(t, err)
	algs = append(algs, lp, zs)

	for _, alg := range algs {
		assert.Equal(t, 2, alg.BlockSize())
		assert.NoError(t, alg.SetBlockSize(16))
		assert.Equal(t, 16, alg.BlockSize())
		assert.ErrorIs(t, alg.SetBlockSize(1), ErrInvalidBlockSize)
		assert.Equal(t, 16, alg.BlockSize(), "Failed assignment should keep the previous block size")
	}
}

func TestLengthPrefixed_RoundTrip(t *testing.T) {
	for _, blockSize := range []int{2, 3, 16, 32, 255} {
		p, err := NewLengthPrefixed(blockSize)
		require.NoError(t, err)
		// Padded lengths above 513 switch Unpad to a wider prefix.
		for length := 0; p.paddedLength(length) <= 513; length++ {
			data := sequence(length)
			padded, err := p.Pad(data)
			require.NoError(t, err)
			assert.Zero(t, len(padded)%blockSize)
			assert.Greater(t, len(padded), length)
			assert.Equal(t, data, padded[len(padded)-length:])

			unpadded, err := p.Unpad(padded)
			require.NoError(t, err)
			assert.Equal(t, data, unpadded, "block size %d, length %d", blockSize, length)
		}
	}
}

func TestLengthPrefixed_Layout(t *testing.T) {
	p, err := NewLengthPrefixed(8, WithRandomSource(ReaderSource(bytes.NewReader([]byte{0xaa, 0xbb, 0xcc, 0xdd}))))
	require.NoError(t, err)
	padded, err := p.Pad([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 0xaa, 0xbb, 0xcc, 0xdd, 1, 2, 3}, padded)
}

func TestLengthPrefixed_WidePrefix(t *testing.T) {
	p, err := NewLengthPrefixed(300, WithRandomSource(zeroSource(300)))
	require.NoError(t, err)
	padded, err := p.Pad([]byte{9})
	require.NoError(t, err)
	require.Len(t, padded, 300)
	assert.Equal(t, []byte{0x29, 0x01}, padded[:2], "299 bytes of padding is stored as 297 in two bytes")
	assert.Equal(t, byte(9), padded[299])
}

func TestLengthPrefixed_WideUnpadOffset(t *testing.T) {
	// A 1024 byte buffer is decoded with a 2 byte prefix even though Pad wrote a 1 byte prefix.
	p, err := NewLengthPrefixed(1024, WithRandomSource(zeroSource(1024)))
	require.NoError(t, err)
	data := sequence(1000)
	padded, err := p.Pad(data)
	require.NoError(t, err)
	require.Len(t, padded, 1024)
	assert.Equal(t, byte(23), padded[0])

	unpadded, err := p.Unpad(padded)
	require.NoError(t, err)
	assert.Equal(t, data[:999], unpadded)
}

func TestLengthPrefixed_RoundTrips(t *testing.T) {
	tests := map[string]struct {
		blockSize int
		dataLen   int
		expected  bool
	}{
		"Empty":              {blockSize: 32, dataLen: 0, expected: true},
		"Largest default":    {blockSize: 32, dataLen: 511, expected: true},
		"Past limit":         {blockSize: 32, dataLen: 512, expected: false},
		"Default CLI sized":  {blockSize: 32, dataLen: 1000, expected: false},
		"Max block":          {blockSize: 255, dataLen: 257, expected: true},
		"Max block too long": {blockSize: 255, dataLen: 510, expected: false},
		"Wide block":         {blockSize: 256, dataLen: 1, expected: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewLengthPrefixed(tc.blockSize)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p.RoundTrips(tc.dataLen))
			if !tc.expected {
				return
			}
			data := sequence(tc.dataLen)
			padded, err := p.Pad(data)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(padded), MaxRoundTripLength)
			unpadded, err := p.Unpad(padded)
			require.NoError(t, err)
			assert.Equal(t, data, unpadded)
		})
	}
}

func TestLengthPrefix(t *testing.T) {
	tests := map[string]struct {
		length   int
		expected []byte
	}{
		"One byte":         {length: 255, expected: []byte{254}},
		"Two bytes":        {length: 256, expected: []byte{254, 0}},
		"Two bytes max":    {length: 32767, expected: []byte{0xfd, 0x7f}},
		"Four bytes":       {length: 32768, expected: []byte{0xfc, 0x7f, 0, 0}},
		"Four bytes large": {length: 1 << 20, expected: []byte{0xfc, 0xff, 0x0f, 0}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			prefix, err := lengthPrefix(tc.length)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, prefix)
		})
	}

	if strconv.IntSize == 64 {
		length := math.MaxInt32
		_, err := lengthPrefix(length + 1)
		assert.ErrorIs(t, err, ErrUnrepresentableSize)
	}
}

func TestPrefixWidth(t *testing.T) {
	assert.Equal(t, 1, prefixWidth(513))
	assert.Equal(t, 2, prefixWidth(514))
	assert.Equal(t, 2, prefixWidth(65538))
	assert.Equal(t, 4, prefixWidth(65539))
}

func TestLengthPrefixed_UnpadCorrupt(t *testing.T) {
	p, err := NewLengthPrefixed(4)
	require.NoError(t, err)
	_, err = p.Unpad([]byte{200, 1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestZeroSuffixed_RoundTrip(t *testing.T) {
	for _, blockSize := range []int{2, 3, 4, 16, 300} {
		p, err := NewZeroSuffixed(blockSize)
		require.NoError(t, err)
		for _, length := range []int{0, 1, blockSize - 1, blockSize, blockSize + 1, 3 * blockSize, 1000} {
			data := sequence(length)
			if length > 0 {
				data[0] = 0
			}
			padded, err := p.Pad(data)
			require.NoError(t, err)
			assert.Zero(t, len(padded)%blockSize)
			assert.Greater(t, len(padded), length)

			unpadded, err := p.Unpad(padded)
			require.NoError(t, err)
			assert.Equal(t, data, unpadded, "block size %d, length %d", blockSize, length)
		}
	}
}

func TestZeroSuffixed_AlignedData(t *testing.T) {
	p, err := NewZeroSuffixed(4)
	require.NoError(t, err)
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	padded, err := p.Pad(data)
	require.NoError(t, err)
	require.Len(t, padded, 8)
	assert.NotContains(t, padded[:3], byte(0))
	assert.Equal(t, byte(0), padded[3])
	assert.Equal(t, data, padded[4:])
}

func TestZeroSuffixed_NoSentinel(t *testing.T) {
	p, err := NewZeroSuffixed(2)
	require.NoError(t, err)
	data := []byte{1, 2, 3, 4}
	unpadded, err := p.Unpad(data)
	assert.NoError(t, err)
	assert.Equal(t, data, unpadded)
	unpadded[0] = 9
	assert.Equal(t, byte(1), data[0], "Output should not alias the input")
}

func TestUnpad_Neg(t *testing.T) {
	lp, err := NewLengthPrefixed(4)
	require.NoError(t, err)
	zs, err := NewZeroSuffixed(4)
	require.NoError(t, err)

	for _, alg := range []Algorithm{lp, zs} {
		out, err := alg.Unpad([]byte{})
		assert.NoError(t, err)
		assert.NotNil(t, out)
		assert.Len(t, out, 0)

		_, err = alg.Unpad(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = alg.Unpad([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = alg.Pad(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestPad_RandomFailure(t *testing.T) {
	lp, err := NewLengthPrefixed(8, WithRandomSource(zeroSource(2)))
	require.NoError(t, err)
	_, err = lp.Pad([]byte{1})
	assert.Error(t, err)

	zs, err := NewZeroSuffixed(8, WithRandomSource(zeroSource(64)))
	require.NoError(t, err)
	_, err = zs.Pad([]byte{1})
	assert.Error(t, err)
}
