package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NonceAndMeta is the decoded nonceAndMeta field of an order:
//
//	bits [0,160)   designated taker (zero address when open)
//	bits [160,256) random nonce
type NonceAndMeta struct {
	Nonce *uint256.Int
	Taker common.Address
}

// Pack encodes n into the 256-bit nonceAndMeta value
func (n NonceAndMeta) Pack() (*big.Int, error) {
	word := new(uint256.Int)
	if n.Nonce != nil {
		if n.Nonce.BitLen() > NonceBits {
			return nil, &EncodingOverflowError{Field: "nonce", Bits: NonceBits, Value: n.Nonce.ToBig().String()}
		}
		word.Lsh(n.Nonce, AddressBits)
	}
	word.Or(word, addressWord(n.Taker))
	return word.ToBig(), nil
}

// UnpackNonceAndMeta splits a nonceAndMeta value into nonce and taker
func UnpackNonceAndMeta(v *big.Int) (NonceAndMeta, error) {
	word, err := toUint256("nonceAndMeta", v, ContainerBits)
	if err != nil {
		return NonceAndMeta{}, err
	}
	return NonceAndMeta{
		Nonce: new(uint256.Int).Rsh(word, AddressBits),
		Taker: wordAddress(word),
	}, nil
}

// PackNonceWithTaker draws a random 256-bit value, replaces its low 160 bits
// with taker and returns the result. The upper 96 bits keep their entropy.
func PackNonceWithTaker(src RandomSource, taker string) (*big.Int, error) {
	addr, err := ParseAddress("actualTaker", taker)
	if err != nil {
		return nil, err
	}

	r, err := src.RandomUint(MaxUint256)
	if err != nil {
		return nil, err
	}
	word, err := toUint256("random", r, ContainerBits)
	if err != nil {
		return nil, err
	}

	return NonceAndMeta{
		Nonce: word.Rsh(word, AddressBits),
		Taker: addr,
	}.Pack()
}
