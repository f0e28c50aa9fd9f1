package chug

import (
	"github.com/saylorsolutions/chug/pkg/chug/padding"
)

const (
	// DefaultBlockSize is the block size of the padding installed by UsePadding.
	DefaultBlockSize = 32
)

// Cipher applies the chug transform, optionally padding data to a block boundary first.
// The configuration is fixed once New returns, so a Cipher may be shared between goroutines as long as its padding.Algorithm is not reconfigured.
type Cipher struct {
	usePadding bool
	padding    padding.Algorithm
}

type CipherOpt = func(*Cipher) error

// UsePadding enables or disables padding.
// Enabling padding when no algorithm has been set installs padding.LengthPrefixed with DefaultBlockSize.
func UsePadding(enabled bool) CipherOpt {
	return func(c *Cipher) error {
		c.usePadding = enabled
		if enabled && c.padding == nil {
			alg, err := padding.NewLengthPrefixed(DefaultBlockSize)
			if err != nil {
				return err
			}
			c.padding = alg
		}
		return nil
	}
}

// WithPadding enables padding with the given algorithm.
// A nil algorithm is accepted here, but Encrypt and Decrypt will fail with ErrMissingPadding.
func WithPadding(alg padding.Algorithm) CipherOpt {
	return func(c *Cipher) error {
		c.usePadding = true
		c.padding = alg
		return nil
	}
}

// New creates a Cipher using zero or more CipherOpt.
// By default padding is disabled.
func New(opts ...CipherOpt) (*Cipher, error) {
	c := new(Cipher)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// UsesPadding reports whether Encrypt pads before transforming.
func (c *Cipher) UsesPadding() bool {
	return c.usePadding
}

// Padding returns the configured padding algorithm, which may be nil.
func (c *Cipher) Padding() padding.Algorithm {
	return c.padding
}

func (c *Cipher) paddingAlgorithm() (padding.Algorithm, error) {
	if c.padding == nil {
		return nil, ErrMissingPadding
	}
	return c.padding, nil
}

// Encrypt pads data if padding is enabled, and then applies Forward with key.
func (c *Cipher) Encrypt(data, key []byte) ([]byte, error) {
	if !c.usePadding {
		return Forward(data, key)
	}
	alg, err := c.paddingAlgorithm()
	if err != nil {
		return nil, err
	}
	if _, err := validate(data, key); err != nil {
		return nil, err
	}
	padded, err := alg.Pad(data)
	if err != nil {
		return nil, err
	}
	return Forward(padded, key)
}

// Decrypt applies Reverse with key, and then removes padding if padding is enabled.
func (c *Cipher) Decrypt(data, key []byte) ([]byte, error) {
	if !c.usePadding {
		return Reverse(data, key)
	}
	alg, err := c.paddingAlgorithm()
	if err != nil {
		return nil, err
	}
	plain, err := Reverse(data, key)
	if err != nil {
		return nil, err
	}
	return alg.Unpad(plain)
}
