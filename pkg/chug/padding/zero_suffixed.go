package padding

import (
	"bytes"
	"fmt"
)

var _ Algorithm = (*ZeroSuffixed)(nil)

// ZeroSuffixed pads with non-zero random filler terminated by a single zero byte.
type ZeroSuffixed struct {
	config
}

// NewZeroSuffixed creates a ZeroSuffixed padding with the given block size.
func NewZeroSuffixed(blockSize int, opts ...Opt) (*ZeroSuffixed, error) {
	c, err := newConfig(blockSize, opts)
	if err != nil {
		return nil, err
	}
	return &ZeroSuffixed{config: c}, nil
}

func (p *ZeroSuffixed) Pad(data []byte) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	paddedLen := p.paddedLength(len(data))
	if paddedLen == len(data) {
		paddedLen += p.blockSize
	}
	fillerLen := paddedLen - 1 - len(data)

	padded := make([]byte, paddedLen)
	if err := p.rand.FillNonZero(padded[:fillerLen]); err != nil {
		return nil, err
	}
	// padded[fillerLen] is the zero sentinel.
	copy(padded[fillerLen+1:], data)
	return padded, nil
}

// Unpad drops everything up to and including the first zero byte.
// If there is no zero byte, a copy of data is returned as-is.
func (p *ZeroSuffixed) Unpad(data []byte) ([]byte, error) {
	if err := p.checkUnpad(data); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []byte{}, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[i+1:]
	}
	return bytes.Clone(data), nil
}
