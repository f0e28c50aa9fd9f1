package chug

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	bin "github.com/saylorsolutions/binmap"
	"github.com/saylorsolutions/chug/pkg/chug/padding"
)

const (
	paramsMagic   uint8 = 0xc4
	paramsVersion uint8 = 1
)

var (
	ErrInvalidHeader     = errors.New("invalid chug parameter header")
	ErrUnsupportedScheme = errors.New("unsupported padding scheme")
)

// Scheme identifies a padding algorithm, or the lack of one.
type Scheme uint8

const (
	SchemeNone Scheme = iota
	SchemeLengthPrefixed
	SchemeZeroSuffixed
)

func (s Scheme) String() string {
	switch s {
	case SchemeNone:
		return "none"
	case SchemeLengthPrefixed:
		return "length"
	case SchemeZeroSuffixed:
		return "zero"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// ParseScheme accepts the names produced by Scheme.String.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return SchemeNone, nil
	case "length":
		return SchemeLengthPrefixed, nil
	case "zero":
		return SchemeZeroSuffixed, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnsupportedScheme, name)
	}
}

// Params describes how a Cipher was configured, so the same configuration can be recreated for decryption.
type Params struct {
	Scheme    Scheme
	BlockSize int
}

// ParamsOf reports the Params of an existing Cipher.
// Only the padding algorithms from the padding package can be described.
func ParamsOf(c *Cipher) (Params, error) {
	if !c.usePadding {
		return Params{Scheme: SchemeNone}, nil
	}
	switch alg := c.padding.(type) {
	case nil:
		return Params{}, ErrMissingPadding
	case *padding.LengthPrefixed:
		return Params{Scheme: SchemeLengthPrefixed, BlockSize: alg.BlockSize()}, nil
	case *padding.ZeroSuffixed:
		return Params{Scheme: SchemeZeroSuffixed, BlockSize: alg.BlockSize()}, nil
	default:
		return Params{}, fmt.Errorf("%w: %T", ErrUnsupportedScheme, alg)
	}
}

// Cipher creates a new Cipher from these Params.
// The padding options are passed to the padding algorithm constructor, if there is one.
func (p Params) Cipher(opts ...padding.Opt) (*Cipher, error) {
	var (
		alg padding.Algorithm
		err error
	)
	switch p.Scheme {
	case SchemeNone:
		return New()
	case SchemeLengthPrefixed:
		alg, err = padding.NewLengthPrefixed(p.BlockSize, opts...)
	case SchemeZeroSuffixed:
		alg, err = padding.NewZeroSuffixed(p.BlockSize, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, p.Scheme)
	}
	if err != nil {
		return nil, err
	}
	return New(WithPadding(alg))
}

type paramsHeader struct {
	magic     uint8
	version   uint8
	scheme    uint8
	blockSize uint64
}

func (h *paramsHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Byte(&h.magic),
		bin.Byte(&h.version),
		bin.Byte(&h.scheme),
		bin.Int(&h.blockSize),
	)
}

// Write encodes the Params as a fixed size header.
func (p Params) Write(w io.Writer) error {
	switch p.Scheme {
	case SchemeNone:
		p.BlockSize = 0
	case SchemeLengthPrefixed, SchemeZeroSuffixed:
		if p.BlockSize < padding.MinBlockSize {
			return fmt.Errorf("%w: block size %d", padding.ErrInvalidBlockSize, p.BlockSize)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, p.Scheme)
	}
	h := paramsHeader{
		magic:     paramsMagic,
		version:   paramsVersion,
		scheme:    uint8(p.Scheme),
		blockSize: uint64(p.BlockSize),
	}
	return h.mapper().Write(w, binary.BigEndian)
}

// Read decodes a header written by Params.Write.
func (p *Params) Read(r io.Reader) error {
	var h paramsHeader
	if err := h.mapper().Read(r, binary.BigEndian); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if h.magic != paramsMagic {
		return fmt.Errorf("%w: unrecognized magic byte 0x%02x", ErrInvalidHeader, h.magic)
	}
	if h.version != paramsVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, h.version)
	}
	scheme := Scheme(h.scheme)
	switch scheme {
	case SchemeNone:
	case SchemeLengthPrefixed, SchemeZeroSuffixed:
		if h.blockSize < padding.MinBlockSize || h.blockSize > math.MaxInt32 {
			return fmt.Errorf("%w: block size %d is out of range", ErrInvalidHeader, h.blockSize)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidHeader, scheme)
	}
	p.Scheme = scheme
	p.BlockSize = int(h.blockSize)
	return nil
}
