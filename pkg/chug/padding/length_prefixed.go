package padding

import (
	"encoding/binary"
	"fmt"
	"math"
)

var _ Algorithm = (*LengthPrefixed)(nil)

const (
	// MaxRoundTripBlockSize is the largest block size that always produces a 1 byte prefix.
	MaxRoundTripBlockSize = math.MaxUint8
	// MaxRoundTripLength is the largest padded length that Unpad decodes with a 1 byte prefix.
	MaxRoundTripLength = (math.MaxUint8+1)*2 + 1
)

// LengthPrefixed pads with a little-endian length prefix followed by random filler.
type LengthPrefixed struct {
	config
}

// NewLengthPrefixed creates a LengthPrefixed padding with the given block size.
func NewLengthPrefixed(blockSize int, opts ...Opt) (*LengthPrefixed, error) {
	c, err := newConfig(blockSize, opts)
	if err != nil {
		return nil, err
	}
	return &LengthPrefixed{config: c}, nil
}

// lengthPrefix encodes the combined prefix and filler length, minus the width of the prefix itself.
func lengthPrefix(length int) ([]byte, error) {
	switch {
	case length <= math.MaxUint8:
		return []byte{byte(length - 1)}, nil
	case length <= math.MaxInt16:
		return binary.LittleEndian.AppendUint16(nil, uint16(int16(length-2))), nil
	case length <= math.MaxInt32:
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(length-4))), nil
	default:
		return nil, fmt.Errorf("%w: %d bytes of padding", ErrUnrepresentableSize, length)
	}
}

// prefixWidth derives the prefix width from the padded length alone.
func prefixWidth(paddedLen int) int {
	switch {
	case paddedLen <= MaxRoundTripLength:
		return 1
	case paddedLen <= (math.MaxInt16+1)*2+2:
		return 2
	default:
		return 4
	}
}

// RoundTrips reports whether data of dataLen bytes can be padded and then unpadded back to the same bytes.
func (p *LengthPrefixed) RoundTrips(dataLen int) bool {
	return p.blockSize <= MaxRoundTripBlockSize && p.paddedLength(dataLen) <= MaxRoundTripLength
}

func (p *LengthPrefixed) Pad(data []byte) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	paddedLen := p.paddedLength(len(data))
	fillerEnd := paddedLen - len(data)
	prefix, err := lengthPrefix(fillerEnd)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, paddedLen)
	copy(padded, prefix)
	if err := p.rand.Fill(padded[len(prefix):fillerEnd]); err != nil {
		return nil, err
	}
	copy(padded[fillerEnd:], data)
	return padded, nil
}

// Unpad removes the prefix and filler.
// The data is always read from the stored prefix value + 1, whatever the prefix width.
func (p *LengthPrefixed) Unpad(data []byte) ([]byte, error) {
	if err := p.checkUnpad(data); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	width := prefixWidth(len(data))
	var paddingLen int
	switch width {
	case 1:
		paddingLen = int(data[0])
	case 2:
		paddingLen = int(int16(binary.LittleEndian.Uint16(data)))
	default:
		paddingLen = int(int32(binary.LittleEndian.Uint32(data)))
	}

	start := paddingLen + 1
	size := len(data) - (width + paddingLen)
	if paddingLen < 0 || size < 0 {
		return nil, fmt.Errorf("%w: length prefix %d is out of range for %d bytes", ErrInvalidArgument, paddingLen, len(data))
	}
	unpadded := make([]byte, size)
	copy(unpadded, data[start:start+size])
	return unpadded, nil
}
