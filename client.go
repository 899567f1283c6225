package augustusrfq

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"

	"github.com/kaifufi/augustus-rfq-sdk-go/chain"
)

// Client builds AugustusRFQ orders and their EIP712 payloads.
// It is safe for concurrent use.
type Client struct {
	builder  *chain.OrderBuilder
	registry ContractRegistry
	logger   *zap.Logger
}

// ClientConfig holds configuration for creating a Client
type ClientConfig struct {
	// Registry resolves AugustusRFQ addresses; defaults to DefaultRegistry
	Registry ContractRegistry
	// Logger defaults to a no-op logger
	Logger *zap.Logger
	// Random defaults to crypto/rand
	Random chain.RandomSource
}

// NewClient creates a new Client
func NewClient(config ClientConfig) *Client {
	if config.Registry == nil {
		config.Registry = DefaultRegistry()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Client{
		builder:  chain.NewOrderBuilder(config.Random),
		registry: config.Registry,
		logger:   config.Logger,
	}
}

// NewClientFromConfig validates cfg and creates a Client with its registry
// and a logger at the configured level
func NewClientFromConfig(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return NewClient(ClientConfig{Registry: registry, Logger: logger}), nil
}

// CreateOrder builds an order. A nil NonceAndMeta draws a random 256-bit nonce.
func (c *Client) CreateOrder(data chain.OrderData) (Order, error) {
	order, err := c.builder.BuildOrder(&data)
	if err != nil {
		c.logger.Warn("create order failed", zap.Error(err))
		return Order{}, err
	}

	c.logger.Debug("order created",
		zap.String("maker", order.Maker.Hex()),
		zap.String("taker", order.Taker.Hex()),
		zap.Int64("expiry", order.Expiry),
	)
	return order, nil
}

// CreateManagedOrder builds an order routed through the network's AugustusRFQ
// contract. ActualTaker is packed into the low 160 bits of the nonce.
func (c *Client) CreateManagedOrder(input ManagedOrderInput) (Order, error) {
	augustus, err := c.registry.AugustusRFQ(input.Network)
	if err != nil {
		c.logger.Warn("create managed order failed", zap.Stringer("network", input.Network), zap.Error(err))
		return Order{}, err
	}

	nonceAndMeta, err := c.builder.PackNonceWithTaker(input.ActualTaker)
	if err != nil {
		c.logger.Warn("create managed order failed", zap.Stringer("network", input.Network), zap.Error(err))
		return Order{}, err
	}

	order, err := c.CreateOrder(chain.OrderData{
		Expiry:       input.Expiry,
		Maker:        input.Maker,
		Taker:        augustus.Hex(),
		MakerAsset:   input.MakerAsset,
		TakerAsset:   input.TakerAsset,
		MakerAmount:  input.MakerAmount,
		TakerAmount:  input.TakerAmount,
		NonceAndMeta: nonceAndMeta,
	})
	if err != nil {
		return Order{}, err
	}

	c.logger.Debug("managed order created",
		zap.Stringer("network", input.Network),
		zap.String("actualTaker", input.ActualTaker),
	)
	return order, nil
}

// CreateManagedP2POrder builds a managed order.
//
// Deprecated: identical to CreateManagedOrder; use that instead.
func (c *Client) CreateManagedP2POrder(input ManagedOrderInput) (Order, error) {
	return c.CreateManagedOrder(input)
}

// CreateOrderNFT builds an NFT order. Each asset address carries its
// AssetType above bit 160.
func (c *Client) CreateOrderNFT(data chain.OrderNFTData) (OrderNFT, error) {
	order, err := c.builder.BuildOrderNFT(&data)
	if err != nil {
		c.logger.Warn("create nft order failed", zap.Error(err))
		return OrderNFT{}, err
	}

	c.logger.Debug("nft order created",
		zap.String("maker", order.Maker.Hex()),
		zap.String("taker", order.Taker.Hex()),
		zap.Stringer("makerAssetType", data.MakerAssetType),
		zap.Stringer("takerAssetType", data.TakerAssetType),
	)
	return order, nil
}

// CreateManagedOrderNFT packs ActualTaker into the nonce and builds an NFT
// order. Unlike CreateManagedOrder the taker is not replaced.
func (c *Client) CreateManagedOrderNFT(input ManagedOrderNFTInput) (OrderNFT, error) {
	nonceAndMeta, err := c.builder.PackNonceWithTaker(input.ActualTaker)
	if err != nil {
		c.logger.Warn("create managed nft order failed", zap.Error(err))
		return OrderNFT{}, err
	}

	return c.CreateOrderNFT(chain.OrderNFTData{
		Expiry:         input.Expiry,
		Maker:          input.Maker,
		Taker:          input.Taker,
		MakerAsset:     input.MakerAsset,
		MakerAssetType: input.MakerAssetType,
		MakerAssetID:   input.MakerAssetID,
		TakerAsset:     input.TakerAsset,
		TakerAssetType: input.TakerAssetType,
		TakerAssetID:   input.TakerAssetID,
		MakerAmount:    input.MakerAmount,
		TakerAmount:    input.TakerAmount,
		NonceAndMeta:   nonceAndMeta,
	})
}

// Domain returns the EIP712 domain of the network's AugustusRFQ contract
func (c *Client) Domain(network Network) (*chain.EIP712Domain, error) {
	augustus, err := c.registry.AugustusRFQ(network)
	if err != nil {
		return nil, err
	}
	return chain.NewEIP712Domain(network.ChainID(), augustus), nil
}

// OrderTypedData returns the wallet signing payload of an order
func (c *Client) OrderTypedData(network Network, order Order) (apitypes.TypedData, error) {
	domain, err := c.Domain(network)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	return chain.OrderTypedData(domain, order), nil
}

// OrderNFTTypedData returns the wallet signing payload of an NFT order
func (c *Client) OrderNFTTypedData(network Network, order OrderNFT) (apitypes.TypedData, error) {
	domain, err := c.Domain(network)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	return chain.OrderNFTTypedData(domain, order), nil
}

// OrderHash returns the EIP712 digest a signer must sign for order
func (c *Client) OrderHash(network Network, order Order) (common.Hash, error) {
	domain, err := c.Domain(network)
	if err != nil {
		return common.Hash{}, err
	}
	structHash, err := order.StructHash()
	if err != nil {
		return common.Hash{}, err
	}
	return chain.CreateSignHash(domain, structHash)
}

// OrderNFTHash returns the EIP712 digest a signer must sign for an NFT order
func (c *Client) OrderNFTHash(network Network, order OrderNFT) (common.Hash, error) {
	domain, err := c.Domain(network)
	if err != nil {
		return common.Hash{}, err
	}
	structHash, err := order.StructHash()
	if err != nil {
		return common.Hash{}, err
	}
	return chain.CreateSignHash(domain, structHash)
}

// VerifyDeployment checks that caller is connected to network and that the
// registered AugustusRFQ address holds code there
func (c *Client) VerifyDeployment(ctx context.Context, caller *chain.ContractCaller, network Network) error {
	augustus, err := c.registry.AugustusRFQ(network)
	if err != nil {
		return err
	}

	chainID, err := caller.ChainID(ctx)
	if err != nil {
		return err
	}
	if chainID.Cmp(network.ChainID()) != 0 {
		return fmt.Errorf("%w: rpc serves %s, want %s", ErrChainMismatch, chainID, network)
	}

	ok, err := caller.HasCode(ctx, augustus)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s on network %s", ErrContractNotDeployed, augustus.Hex(), network)
	}

	c.logger.Info("augustus rfq deployment verified",
		zap.Stringer("network", network),
		zap.String("address", augustus.Hex()),
	)
	return nil
}

// OrderStatus reads the contract's remaining amount for a signed order hash
func (c *Client) OrderStatus(ctx context.Context, caller *chain.ContractCaller, network Network, orderHash common.Hash) (*RemainingStatus, error) {
	augustus, err := c.registry.AugustusRFQ(network)
	if err != nil {
		return nil, err
	}
	remaining, err := caller.Remaining(ctx, augustus, orderHash)
	if err != nil {
		return nil, err
	}
	return newRemainingStatus(remaining), nil
}
