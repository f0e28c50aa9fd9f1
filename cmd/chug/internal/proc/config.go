package proc

import (
	"encoding/hex"
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/saylorsolutions/chug/pkg/chug"
)

// Config holds everything needed to process a set of files.
type Config struct {
	Decrypt    bool
	KeyHex     string `validate:"excluded_with=Passphrase"`
	Passphrase string `validate:"required_without=KeyHex"`
	Scheme     string `validate:"oneof=none length zero"`
	BlockSize  int    `validate:"min=2,max=65536"`
	Parallel   int    `validate:"min=1"`
	Ext        string `validate:"required,startswith=."`

	Files []string `validate:"min=1,dive,required"`
}

// DefaultConfig returns the configuration used when no flags override it.
// Zero suffixed padding is the default since it round trips any file size.
func DefaultConfig() Config {
	return Config{
		Scheme:    chug.SchemeZeroSuffixed.String(),
		BlockSize: chug.DefaultBlockSize,
		Parallel:  runtime.NumCPU(),
		Ext:       ".chug",
	}
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if len(c.KeyHex) > 0 {
		key, err := hex.DecodeString(c.KeyHex)
		if err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
		if len(key) == 0 {
			return fmt.Errorf("%w: empty key", chug.ErrInvalidArgument)
		}
	}
	return nil
}

func (c Config) params() (chug.Params, error) {
	scheme, err := chug.ParseScheme(c.Scheme)
	if err != nil {
		return chug.Params{}, err
	}
	if scheme == chug.SchemeNone {
		return chug.Params{Scheme: scheme}, nil
	}
	return chug.Params{Scheme: scheme, BlockSize: c.BlockSize}, nil
}
