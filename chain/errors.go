package chain

import (
	"errors"
	"fmt"
)

// Encoding errors
var (
	ErrInvalidAddress     = errors.New("invalid address")
	ErrEncodingOverflow   = errors.New("encoding overflow")
	ErrEntropyUnavailable = errors.New("entropy unavailable")
)

// EncodingOverflowError reports a value that does not fit its bit span
type EncodingOverflowError struct {
	Field string
	Bits  int
	Value string
}

func (e *EncodingOverflowError) Error() string {
	return fmt.Sprintf("%s: %s does not fit in %d unsigned bits", e.Field, e.Value, e.Bits)
}

func (e *EncodingOverflowError) Unwrap() error {
	return ErrEncodingOverflow
}

// InvalidAddressError reports an address input that is not 20 bytes of hex
type InvalidAddressError struct {
	Field string
	Value string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("%s: %q is not a 20-byte hex address", e.Field, e.Value)
}

func (e *InvalidAddressError) Unwrap() error {
	return ErrInvalidAddress
}
