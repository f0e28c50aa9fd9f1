package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"

	"github.com/saylorsolutions/chug/cmd/chug/internal/proc"
	"github.com/saylorsolutions/chug/cmd/internal"
	"github.com/saylorsolutions/chug/pkg/chug"
	flag "github.com/spf13/pflag"
)

const (
	passphraseEnv = "CHUG_PASSPHRASE"
)

var (
	version = "dev"
)

func main() {
	var (
		helpFlag    bool
		versionFlag bool
		quietFlag   bool
		genKeyLen   int
	)
	cfg := proc.DefaultConfig()
	flags := flag.NewFlagSet("chug", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version and exits.")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-error output.")
	flags.IntVarP(&genKeyLen, "gen-key", "g", 0, "Generate a random hex key with the given number of bytes and exit.")
	flags.BoolVarP(&cfg.Decrypt, "decrypt", "d", false, "Decrypt files instead of encrypting them.")
	flags.StringVarP(&cfg.KeyHex, "key", "k", "", "Hex encoded key. Mutually exclusive with --passphrase.")
	flags.StringVarP(&cfg.Passphrase, "passphrase", "p", os.Getenv(passphraseEnv), "Passphrase used to derive a key, defaults to $"+passphraseEnv+".")
	flags.StringVar(&cfg.Scheme, "padding", cfg.Scheme, "Padding scheme used when encrypting, one of none, length, or zero.")
	flags.IntVarP(&cfg.BlockSize, "block-size", "b", cfg.BlockSize, "Padding block size used when encrypting.")
	flags.IntVarP(&cfg.Parallel, "parallel", "j", cfg.Parallel, "Number of files to process at once.")
	flags.StringVarP(&cfg.Ext, "ext", "e", cfg.Ext, "Suffix appended to encrypted files, and stripped from decrypted files.")
	flags.Usage = func() {
		fmt.Printf(`
chug encrypts and decrypts files with the chug byte transform, optionally padding them to a block boundary first.
Encrypted files carry a small header describing the padding used, so decryption only needs the key or passphrase.

USAGE:  chug [FLAGS] FILE...

FLAGS:
%s
SECURITY:
    chug is an illustrative encoding, NOT vetted encryption. It provides no authentication and no resistance to analysis.
The length prefixed padding scheme only round trips block sizes up to 255 with a padded size of at most 513 bytes.
Encrypting a larger file with --padding length fails rather than writing a file that cannot be decrypted.
`, flags.FlagUsages())
	}
	if len(os.Args) == 1 {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	switch {
	case helpFlag:
		flags.Usage()
		return
	case versionFlag:
		fmt.Println(version)
		return
	case genKeyLen != 0:
		key, err := chug.GenKey(genKeyLen)
		if err != nil {
			internal.Fatal("Failed to generate key: %v", err)
		}
		fmt.Println(hex.EncodeToString(key))
		return
	}
	if len(cfg.KeyHex) > 0 && !flags.Changed("passphrase") {
		cfg.Passphrase = ""
	}
	cfg.Files = flags.Args()
	internal.SetQuiet(quietFlag)

	p, err := proc.NewProcessor(cfg)
	if err != nil {
		internal.Fatal("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = p.Process(ctx, func(res proc.Result) {
		if res.Error != nil {
			internal.Echo("Error processing %s: %v", res.Input, res.Error)
			return
		}
		internal.Info("Processed %s -> %s", res.Input, res.Output)
	})
	if err != nil {
		cancel()
		internal.Fatal("Failed to process all files")
	}
}
