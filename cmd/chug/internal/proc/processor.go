package proc

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saylorsolutions/chug/pkg/chug"
	"github.com/saylorsolutions/chug/pkg/passkey"
	"golang.org/x/sync/errgroup"
)

const (
	decryptFallbackExt = ".dec"
)

// Result reports the outcome of processing a single file.
type Result struct {
	Input  string
	Output string
	Error  error
}

// Processor encrypts or decrypts files according to a Config.
type Processor struct {
	cfg    Config
	params chug.Params
	key    []byte
	gen    *passkey.Generator
}

type ProcessorOpt = func(*Processor) error

// UseGenerator overrides the passphrase key generator used for encryption.
func UseGenerator(gen *passkey.Generator) ProcessorOpt {
	return func(p *Processor) error {
		if gen == nil {
			return fmt.Errorf("%w: nil generator", chug.ErrInvalidArgument)
		}
		p.gen = gen
		return nil
	}
}

// NewProcessor validates cfg and prepares a Processor.
// When a passphrase is configured, keys are derived with passkey.SetShortDelayIterations unless UseGenerator is given.
func NewProcessor(cfg Config, opts ...ProcessorOpt) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.params()
	if err != nil {
		return nil, err
	}
	p := &Processor{
		cfg:    cfg,
		params: params,
	}

	if len(cfg.KeyHex) > 0 {
		p.key, err = hex.DecodeString(cfg.KeyHex)
		if err != nil {
			return nil, fmt.Errorf("decoding key: %w", err)
		}
	} else {
		p.gen, err = passkey.NewGenerator(passkey.SetShortDelayIterations())
		if err != nil {
			return nil, err
		}
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.key != nil {
		p.gen = nil
	}
	return p, nil
}

// Process handles every configured file, at most Config.Parallel at a time.
// The report function, if not nil, is called once per file from the worker goroutine.
// The first error cancels any files that haven't started yet and is returned.
func (p *Processor) Process(ctx context.Context, report func(Result)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parallel)

	for _, file := range p.cfg.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := Result{Input: file, Output: p.outputPath(file)}
			res.Error = p.processFile(res.Input, res.Output)
			if report != nil {
				report(res)
			}
			if res.Error != nil {
				return fmt.Errorf("processing %s: %w", file, res.Error)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Processor) processFile(input, output string) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("getting file info: %w", err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var result []byte
	if p.cfg.Decrypt {
		result, err = p.open(data)
	} else {
		result, err = p.seal(data)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(output, result, info.Mode().Perm())
}

func (p *Processor) outputPath(file string) string {
	if !p.cfg.Decrypt {
		return file + p.cfg.Ext
	}
	base := filepath.Base(file)
	if strings.HasSuffix(base, p.cfg.Ext) && len(base) > len(p.cfg.Ext) {
		return strings.TrimSuffix(file, p.cfg.Ext)
	}
	return file + decryptFallbackExt
}
