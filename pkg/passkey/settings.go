package passkey

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteSettings writes the Generator settings followed by the salt.
func (g *Generator) WriteSettings(w io.Writer, salt Salt) error {
	if len(salt) != int(g.keyLen) {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidSalt, len(salt), g.keyLen)
	}
	if err := g.mapper().Write(w, binary.BigEndian); err != nil {
		return err
	}
	_, err := w.Write(salt)
	return err
}

// ReadSettings reads settings written by WriteSettings into a new Generator, and returns it with the salt.
func ReadSettings(r io.Reader) (*Generator, Salt, error) {
	gen := new(Generator)
	if err := gen.mapper().Read(r, binary.BigEndian); err != nil {
		return nil, nil, fmt.Errorf("failed to read generator settings: %w", err)
	}
	if err := gen.validate(); err != nil {
		return nil, nil, err
	}
	salt := make(Salt, gen.keyLen)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, nil, fmt.Errorf("failed to read salt: %w", err)
	}
	return gen, salt, nil
}

func (g *Generator) validate() error {
	if err := checkIterations(g.iterations); err != nil {
		return err
	}
	// Settings are read from untrusted input, bound the work scrypt will be asked to do.
	if g.iterations > DefaultLargeIterations<<4 {
		return fmt.Errorf("%w: %d iterations is too large", ErrInvalidSetting, g.iterations)
	}
	if g.relativeBlockSize < DefaultRelBlockSize {
		return fmt.Errorf("%w: relative block size %d", ErrInvalidSetting, g.relativeBlockSize)
	}
	if g.cpuCost < DefaultCPUCost {
		return fmt.Errorf("%w: cpu cost %d", ErrInvalidSetting, g.cpuCost)
	}
	if g.keyLen < MinKeyLen {
		return fmt.Errorf("%w: key length %d", ErrInvalidSetting, g.keyLen)
	}
	return nil
}
