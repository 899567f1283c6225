package augustusrfq

import (
	"errors"

	"github.com/kaifufi/augustus-rfq-sdk-go/chain"
)

var (
	// ErrInvalidParam represents an invalid parameter error
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrUnsupportedNetwork is returned when no AugustusRFQ address is registered for a network
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrContractNotDeployed is returned when a registered address holds no code
	ErrContractNotDeployed = errors.New("contract not deployed")

	// ErrChainMismatch is returned when an RPC endpoint serves a different chain
	ErrChainMismatch = errors.New("chain id mismatch")

	// Encoding errors from the chain package
	ErrInvalidAddress     = chain.ErrInvalidAddress
	ErrEncodingOverflow   = chain.ErrEncodingOverflow
	ErrEntropyUnavailable = chain.ErrEntropyUnavailable
)

// InvalidParamError represents an invalid parameter error with context
type InvalidParamError struct {
	Message string
}

func (e *InvalidParamError) Error() string {
	return e.Message
}

func (e *InvalidParamError) Unwrap() error {
	return ErrInvalidParam
}
