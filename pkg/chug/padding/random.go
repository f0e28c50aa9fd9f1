package padding

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomSource fills buffers with filler bytes.
type RandomSource interface {
	// Fill will populate every byte of buf, any value is allowed.
	Fill(buf []byte) error
	// FillNonZero will populate every byte of buf with a value other than 0x00.
	FillNonZero(buf []byte) error
}

var _ RandomSource = (*readerSource)(nil)

type readerSource struct {
	r io.Reader
}

// ReaderSource creates a RandomSource that draws bytes from r.
func ReaderSource(r io.Reader) RandomSource {
	return &readerSource{r: r}
}

// CryptoSource creates a RandomSource backed by crypto/rand.
func CryptoSource() RandomSource {
	return &readerSource{r: rand.Reader}
}

func (s *readerSource) Fill(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return fmt.Errorf("failed to read random bytes: %w", err)
	}
	return nil
}

func (s *readerSource) FillNonZero(buf []byte) error {
	if err := s.Fill(buf); err != nil {
		return err
	}
	var redraw [1]byte
	for i := range buf {
		for buf[i] == 0 {
			if err := s.Fill(redraw[:]); err != nil {
				return err
			}
			buf[i] = redraw[0]
		}
	}
	return nil
}
