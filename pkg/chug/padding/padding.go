package padding

import (
	"errors"
	"fmt"
)

const (
	// MinBlockSize is the smallest block size either scheme accepts.
	MinBlockSize = 2
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidBlockSize    = errors.New("invalid block size")
	ErrUnrepresentableSize = errors.New("padding length cannot be represented")
)

// Algorithm pads data up to a multiple of BlockSize, and removes that padding again.
type Algorithm interface {
	BlockSize() int
	// SetBlockSize will return ErrInvalidBlockSize if size is less than MinBlockSize.
	SetBlockSize(size int) error
	// Pad returns a new buffer with a length that is a multiple of BlockSize.
	Pad(data []byte) ([]byte, error)
	// Unpad returns a new buffer with the padding added by Pad removed.
	Unpad(data []byte) ([]byte, error)
}

// Opt configures an Algorithm at construction time.
type Opt = func(*config) error

// WithRandomSource replaces the default crypto/rand filler source.
func WithRandomSource(src RandomSource) Opt {
	return func(c *config) error {
		if src == nil {
			return fmt.Errorf("%w: nil random source", ErrInvalidArgument)
		}
		c.rand = src
		return nil
	}
}

type config struct {
	blockSize int
	rand      RandomSource
}

func newConfig(blockSize int, opts []Opt) (config, error) {
	c := config{rand: CryptoSource()}
	if err := c.SetBlockSize(blockSize); err != nil {
		return config{}, err
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return config{}, err
		}
	}
	return c, nil
}

func (c *config) BlockSize() int {
	return c.blockSize
}

func (c *config) SetBlockSize(size int) error {
	if size < MinBlockSize {
		return fmt.Errorf("%w: block size %d is less than %d", ErrInvalidBlockSize, size, MinBlockSize)
	}
	c.blockSize = size
	return nil
}

// paddedLength is the smallest multiple of the block size strictly greater than dataLen.
func (c *config) paddedLength(dataLen int) int {
	if dataLen < c.blockSize {
		return c.blockSize
	}
	return c.blockSize * (dataLen/c.blockSize + 1)
}

func (c *config) checkUnpad(data []byte) error {
	if data == nil {
		return fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	if len(data)%c.blockSize != 0 {
		return fmt.Errorf("%w: data length %d is not a multiple of the block size %d", ErrInvalidArgument, len(data), c.blockSize)
	}
	return nil
}
