package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// AugustusRFQ view functions used by ContractCaller
const augustusRFQABIJSON = `[
	{
		"constant": true,
		"inputs": [{"name": "", "type": "bytes32"}],
		"name": "remaining",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

// GetAugustusRFQABI returns the parsed AugustusRFQ ABI
func GetAugustusRFQABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(augustusRFQABIJSON))
	if err != nil {
		panic("failed to parse AugustusRFQ ABI: " + err.Error())
	}
	return parsed
}

// ContractCaller makes read-only calls against an AugustusRFQ deployment.
// It never sends transactions.
type ContractCaller struct {
	client *ethclient.Client
	rfqABI abi.ABI
}

// NewContractCaller dials rpcURL
func NewContractCaller(ctx context.Context, rpcURL string) (*ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return NewContractCallerWithClient(client), nil
}

// NewContractCallerWithClient wraps an existing client
func NewContractCallerWithClient(client *ethclient.Client) *ContractCaller {
	return &ContractCaller{
		client: client,
		rfqABI: GetAugustusRFQABI(),
	}
}

// ChainID returns the chain id reported by the node
func (cc *ContractCaller) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := cc.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	return id, nil
}

// HasCode reports whether addr holds contract code at the latest block
func (cc *ContractCaller) HasCode(ctx context.Context, addr common.Address) (bool, error) {
	code, err := cc.client.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get code at %s: %w", addr.Hex(), err)
	}
	return len(code) > 0, nil
}

// Remaining reads the contract's remaining-amount slot for an order hash.
// Zero means unknown to the contract, one means filled or cancelled.
func (cc *ContractCaller) Remaining(ctx context.Context, contract common.Address, orderHash common.Hash) (*big.Int, error) {
	data, err := cc.rfqABI.Pack("remaining", [32]byte(orderHash))
	if err != nil {
		return nil, fmt.Errorf("failed to pack remaining call: %w", err)
	}

	out, err := cc.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call remaining: %w", err)
	}

	values, err := cc.rfqABI.Unpack("remaining", out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack remaining: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected remaining output length %d", len(values))
	}
	remaining, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected remaining output type %T", values[0])
	}
	return remaining, nil
}

// Close closes the underlying RPC client
func (cc *ContractCaller) Close() {
	if cc.client != nil {
		cc.client.Close()
	}
}
