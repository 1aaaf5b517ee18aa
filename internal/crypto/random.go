package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// IndexSource yields uniformly distributed indexes in [0, bound).
type IndexSource interface {
	Index(bound int) (int, error)
}

// CryptoSource draws indexes from a cryptographically secure byte stream.
// It is safe for concurrent use when its Reader is; crypto/rand.Reader is.
type CryptoSource struct {
	Reader io.Reader
}

// NewCryptoSource returns a CryptoSource backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{Reader: rand.Reader}
}

// Index returns a uniform integer in [0, bound).
//
// Values are drawn 32 bits at a time and rejected when they fall at or above
// the largest multiple of bound that fits in the 32-bit range, so every index
// is equally likely.
func (s *CryptoSource) Index(bound int) (int, error) {
	if bound < 1 || uint64(bound) > math.MaxUint32+1 {
		return 0, ErrBoundOutOfRange
	}
	if bound == 1 {
		return 0, nil
	}

	const sourceRange = uint64(math.MaxUint32) + 1
	n := uint64(bound)
	limit := (sourceRange / n) * n

	var buf [4]byte
	for {
		if _, err := io.ReadFull(s.Reader, buf[:]); err != nil {
			return 0, fmt.Errorf("reading random source: %w", err)
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % n), nil
		}
	}
}
