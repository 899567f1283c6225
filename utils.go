package augustusrfq

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/kaifufi/augustus-rfq-sdk-go/chain"
)

const (
	MaxDecimals = 77
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// ToBaseUnits converts a human-readable amount ("1.5") to integer base units
// of a token with the given decimals. Amounts with more fractional digits
// than decimals are rejected rather than rounded.
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, &InvalidParamError{Message: fmt.Sprintf("decimals must be between 0 and %d, got: %d", MaxDecimals, decimals)}
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, &InvalidParamError{Message: fmt.Sprintf("invalid amount %q: %v", amount, err)}
	}
	if d.IsNegative() {
		return nil, &InvalidParamError{Message: fmt.Sprintf("amount must not be negative, got: %s", amount)}
	}

	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, &InvalidParamError{Message: fmt.Sprintf("amount %s has more than %d decimals", amount, decimals)}
	}

	result := scaled.BigInt()
	if result.Cmp(chain.MaxUint256) > 0 {
		return nil, fmt.Errorf("%w: amount too large for uint256: %s", ErrEncodingOverflow, result.String())
	}
	return result, nil
}

// FromBaseUnits renders integer base units as a decimal string
func FromBaseUnits(units *big.Int, decimals int32) string {
	if units == nil {
		return "0"
	}
	return decimal.NewFromBigInt(units, -decimals).String()
}
