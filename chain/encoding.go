package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ParseAddress validates a hex address (with or without 0x, any casing).
// The checksum form is available through Address.Hex.
func ParseAddress(field, addr string) (common.Address, error) {
	if !common.IsHexAddress(addr) {
		return common.Address{}, &InvalidAddressError{Field: field, Value: addr}
	}
	return common.HexToAddress(addr), nil
}

// ChecksumAddress returns the EIP-55 form of addr
func ChecksumAddress(addr string) (string, error) {
	a, err := ParseAddress("address", addr)
	if err != nil {
		return "", err
	}
	return a.Hex(), nil
}

// toUint256 converts v to a fixed-width word, failing if it is negative or
// wider than bits. nil is zero.
func toUint256(field string, v *big.Int, bits int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 || v.BitLen() > bits {
		return nil, &EncodingOverflowError{Field: field, Bits: bits, Value: v.String()}
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, &EncodingOverflowError{Field: field, Bits: bits, Value: v.String()}
	}
	return u, nil
}

// checkedUint copies v after checking it fits bits; nil becomes zero
func checkedUint(field string, v *big.Int, bits int) (*big.Int, error) {
	u, err := toUint256(field, v, bits)
	if err != nil {
		return nil, err
	}
	return u.ToBig(), nil
}

// ExpiryBits is the width of the contract's expiry field
const ExpiryBits = 128

// checkExpiry rejects expiries an unsigned uint128 cannot hold
func checkExpiry(expiry int64) error {
	if expiry < 0 {
		return &EncodingOverflowError{Field: "expiry", Bits: ExpiryBits, Value: fmt.Sprint(expiry)}
	}
	return nil
}

func addressWord(addr common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes(addr.Bytes())
}

func wordAddress(u *uint256.Int) common.Address {
	return common.Address(u.Bytes20())
}
