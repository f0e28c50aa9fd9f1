package passkey

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/bits"

	bin "github.com/saylorsolutions/binmap"
	"golang.org/x/crypto/scrypt"
)

const (
	DefaultLargeIterations       uint64 = 1 << 20
	DefaultInteractiveIterations uint64 = 1 << 15
	DefaultRelBlockSize          uint8  = 8
	DefaultCPUCost               uint8  = 1
	DefaultKeyLen                uint8  = 32
	MinKeyLen                    uint8  = 8
)

var (
	ErrEmptyPassphrase = errors.New("cannot use an empty passphrase")
	ErrInvalidSalt     = errors.New("salt length does not match the key length")
	ErrInvalidSetting  = errors.New("invalid generator setting")
)

// Key is a chug key derived from a Passphrase.
type Key []byte

// Salt is a slice of secure random bytes that is used with scrypt to generate a Key from a Passphrase.
type Salt []byte

// Passphrase is a human-readable secret used to generate a Key.
type Passphrase []byte

// Generator derives chug keys from passphrases.
// Its settings can be written and read with WriteSettings and ReadSettings, so the same Generator can be used to derive the key again later.
type Generator struct {
	iterations        uint64
	relativeBlockSize uint8
	cpuCost           uint8
	keyLen            uint8
}

func (g *Generator) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&g.iterations),
		bin.Byte(&g.relativeBlockSize),
		bin.Byte(&g.cpuCost),
		bin.Byte(&g.keyLen),
	)
}

type GeneratorOpt = func(*Generator) error

// SetKeyLen sets the length of generated keys, which is also the salt length.
func SetKeyLen(length uint8) GeneratorOpt {
	return func(gen *Generator) error {
		if length < MinKeyLen {
			return fmt.Errorf("%w: key length must be at least %d", ErrInvalidSetting, MinKeyLen)
		}
		gen.keyLen = length
		return nil
	}
}

// SetLongDelayIterations sets a higher iteration count, suitable for infrequent key derivation. This is the default.
func SetLongDelayIterations() GeneratorOpt {
	return func(gen *Generator) error {
		gen.iterations = DefaultLargeIterations
		return nil
	}
}

// SetShortDelayIterations sets a lower iteration count for interactive use.
func SetShortDelayIterations() GeneratorOpt {
	return func(gen *Generator) error {
		gen.iterations = DefaultInteractiveIterations
		return nil
	}
}

// SetIterations allows the caller to customize the iteration count.
// Only use this option if you know what you're doing.
func SetIterations(iterations uint64) GeneratorOpt {
	return func(gen *Generator) error {
		if err := checkIterations(iterations); err != nil {
			return err
		}
		gen.iterations = iterations
		return nil
	}
}

// SetCPUCost sets the parallelism factor.
// Only use this option if you know what you're doing.
func SetCPUCost(cost uint8) GeneratorOpt {
	return func(gen *Generator) error {
		if cost < DefaultCPUCost {
			return fmt.Errorf("%w: cpu cost must be at least %d", ErrInvalidSetting, DefaultCPUCost)
		}
		gen.cpuCost = cost
		return nil
	}
}

// SetRelativeBlockSize sets the scrypt relative block size.
// Only use this option if you know what you're doing.
func SetRelativeBlockSize(size uint8) GeneratorOpt {
	return func(gen *Generator) error {
		if size < DefaultRelBlockSize {
			return fmt.Errorf("%w: relative block size must be at least %d", ErrInvalidSetting, DefaultRelBlockSize)
		}
		gen.relativeBlockSize = size
		return nil
	}
}

func checkIterations(iterations uint64) error {
	if iterations <= 1 || bits.OnesCount64(iterations) != 1 {
		return fmt.Errorf("%w: iterations must be a power of 2 greater than 1", ErrInvalidSetting)
	}
	return nil
}

// NewGenerator creates a new Generator using zero or more GeneratorOpt.
// By default, the generator produces DefaultKeyLen byte keys using DefaultLargeIterations.
func NewGenerator(opts ...GeneratorOpt) (*Generator, error) {
	gen := &Generator{
		iterations:        DefaultLargeIterations,
		relativeBlockSize: DefaultRelBlockSize,
		cpuCost:           DefaultCPUCost,
		keyLen:            DefaultKeyLen,
	}
	for _, opt := range opts {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// KeyLen is the length of keys and salts produced by this Generator.
func (g *Generator) KeyLen() int {
	return int(g.keyLen)
}

// Generate will create a new random Salt and derive a Key from it and the Passphrase.
func (g *Generator) Generate(pass Passphrase) (Key, Salt, error) {
	if len(pass) == 0 {
		return nil, nil, ErrEmptyPassphrase
	}
	salt := make(Salt, g.keyLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	key, err := g.Derive(pass, salt)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}

// Derive will recover the Key produced by Generate for the same Passphrase and Salt.
// This doesn't ensure that the given passphrase is the *correct* passphrase.
func (g *Generator) Derive(pass Passphrase, salt Salt) (Key, error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if len(salt) != int(g.keyLen) {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidSalt, len(salt), g.keyLen)
	}
	key, err := scrypt.Key(pass, salt, int(g.iterations), int(g.relativeBlockSize), int(g.cpuCost), int(g.keyLen))
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
