package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/saylorsolutions/chug/pkg/chug"
	"github.com/saylorsolutions/chug/pkg/chug/padding"
	"github.com/saylorsolutions/chug/pkg/passkey"
)

type keySource byte

const (
	rawKey keySource = iota
	passphraseKey
)

var (
	ErrKeySourceMismatch    = errors.New("file was encrypted with a different kind of key")
	ErrUnrecoverablePadding = errors.New("padding could not be removed again")
)

// seal produces [params header][key source][passkey settings and salt, if any][ciphertext].
func (p *Processor) seal(plaintext []byte) ([]byte, error) {
	cipher, err := p.params.Cipher()
	if err != nil {
		return nil, err
	}
	if lp, ok := cipher.Padding().(*padding.LengthPrefixed); ok && !lp.RoundTrips(len(plaintext)) {
		return nil, fmt.Errorf("%w: length prefixed padding with block size %d only supports padded sizes up to %d bytes, use the zero scheme instead",
			ErrUnrecoverablePadding, lp.BlockSize(), padding.MaxRoundTripLength)
	}

	var buf bytes.Buffer
	if err := p.params.Write(&buf); err != nil {
		return nil, err
	}
	key := p.key
	if p.gen == nil {
		buf.WriteByte(byte(rawKey))
	} else {
		buf.WriteByte(byte(passphraseKey))
		genKey, salt, err := p.gen.Generate(passkey.Passphrase(p.cfg.Passphrase))
		if err != nil {
			return nil, err
		}
		if err := p.gen.WriteSettings(&buf, salt); err != nil {
			return nil, err
		}
		key = genKey
	}

	encrypted, err := cipher.Encrypt(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}
	buf.Write(encrypted)
	return buf.Bytes(), nil
}

// open reverses seal, recreating the cipher from the stored header.
func (p *Processor) open(data []byte) ([]byte, error) {
	r := bytes.NewReader(data)
	var params chug.Params
	if err := params.Read(r); err != nil {
		return nil, err
	}
	var source [1]byte
	if _, err := io.ReadFull(r, source[:]); err != nil {
		return nil, fmt.Errorf("reading key source: %w", err)
	}

	key := p.key
	switch keySource(source[0]) {
	case rawKey:
		if p.key == nil {
			return nil, fmt.Errorf("%w: a hex key is required", ErrKeySourceMismatch)
		}
	case passphraseKey:
		if p.key != nil {
			return nil, fmt.Errorf("%w: a passphrase is required", ErrKeySourceMismatch)
		}
		gen, salt, err := passkey.ReadSettings(r)
		if err != nil {
			return nil, err
		}
		key, err = gen.Derive(passkey.Passphrase(p.cfg.Passphrase), salt)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown key source %d", chug.ErrInvalidHeader, source[0])
	}

	cipher, err := params.Cipher()
	if err != nil {
		return nil, err
	}
	decrypted, err := cipher.Decrypt(data[len(data)-r.Len():], key)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return decrypted, nil
}
