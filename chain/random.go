package chain

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// MaxUint256 is 2^256 - 1
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), ContainerBits), big.NewInt(1))

// RandomSource draws uniform integers for order nonces
type RandomSource interface {
	// RandomUint returns a value in [0, max]
	RandomUint(max *big.Int) (*big.Int, error)
}

type readerSource struct {
	reader io.Reader
}

// NewRandomSource returns a RandomSource reading from r.
// A nil reader means crypto/rand.Reader.
func NewRandomSource(r io.Reader) RandomSource {
	if r == nil {
		r = rand.Reader
	}
	return &readerSource{reader: r}
}

func (s *readerSource) RandomUint(max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() < 0 {
		return nil, errors.New("random bound must be non-negative")
	}
	// rand.Int draws from [0, n)
	n, err := rand.Int(s.reader, new(big.Int).Add(max, big.NewInt(1)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return n, nil
}
