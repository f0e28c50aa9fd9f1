package chug

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingPadding  = errors.New("padding is enabled but no padding algorithm is set")
)

// schedule produces the signed key sum applied to the byte at a given position.
//
// For position i the sum runs over j in [i % len(key), len(key)+i), adding key[j % len(key)] when i+j is even and subtracting it when odd.
// The terms repeat every lcm(2, len(key)) steps of j, so whole periods are folded into a single multiplication.
type schedule struct {
	key       []byte
	period    int
	periodSum int
}

func newSchedule(key []byte) (*schedule, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	s := &schedule{
		key:    key,
		period: len(key),
	}
	if s.period%2 != 0 {
		s.period *= 2
	}
	for j := 0; j < s.period; j++ {
		s.periodSum += s.term(0, j)
	}
	return s, nil
}

func (s *schedule) term(i, j int) int {
	k := int(s.key[j%len(s.key)])
	if (i+j)%2 == 0 {
		return k
	}
	return -k
}

func (s *schedule) sum(i int) int {
	var (
		keyLen = len(s.key)
		start  = i % keyLen
		end    = keyLen + i
		full   = (end - start) / s.period
		n      = full * s.periodSum
	)
	if i%2 != 0 {
		n = -n
	}
	for j := start + full*s.period; j < end; j++ {
		n += s.term(i, j)
	}
	return n
}

func (s *schedule) forward(b byte, i int) byte {
	return truncate(int(b) + s.sum(i))
}

func (s *schedule) reverse(b byte, i int) byte {
	return truncate(int(b) - s.sum(i))
}

// truncate wraps n into a byte the same way an 8-bit two's complement narrowing does.
func truncate(n int) byte {
	return byte(((n % 256) + 256) % 256)
}

func validate(data, key []byte) (*schedule, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidArgument)
	}
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidArgument)
	}
	return newSchedule(key)
}

// Forward mixes every byte of data with the key, returning a new slice of the same length.
func Forward(data, key []byte) ([]byte, error) {
	s, err := validate(data, key)
	if err != nil {
		return nil, err
	}
	result := make([]byte, len(data))
	for i, b := range data {
		result[i] = s.forward(b, i)
	}
	return result, nil
}

// Reverse undoes Forward with the same key.
func Reverse(data, key []byte) ([]byte, error) {
	s, err := validate(data, key)
	if err != nil {
		return nil, err
	}
	result := make([]byte, len(data))
	for i, b := range data {
		result[i] = s.reverse(b, i)
	}
	return result, nil
}
