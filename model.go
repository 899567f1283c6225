package augustusrfq

import (
	"math/big"

	"github.com/kaifufi/augustus-rfq-sdk-go/chain"
)

// AssetType aliases chain.AssetType for callers of the root package
type AssetType = chain.AssetType

const (
	AssetTypeERC20   = chain.AssetTypeERC20
	AssetTypeERC1155 = chain.AssetTypeERC1155
	AssetTypeERC721  = chain.AssetTypeERC721
)

// Order and OrderNFT are the records returned by the client
type (
	Order    = chain.Order
	OrderNFT = chain.OrderNFT
)

// ManagedOrderInput represents input data for a managed order.
// The taker is always the network's AugustusRFQ contract; ActualTaker is
// embedded in the nonce.
type ManagedOrderInput struct {
	Network     Network
	Expiry      int64
	Maker       string
	MakerAsset  string
	TakerAsset  string
	MakerAmount *big.Int
	TakerAmount *big.Int
	ActualTaker string
}

// ManagedOrderNFTInput represents input data for a managed NFT order.
// Taker is used as given.
type ManagedOrderNFTInput struct {
	Expiry         int64
	Maker          string
	Taker          string
	MakerAsset     string
	MakerAssetType AssetType
	MakerAssetID   *big.Int
	TakerAsset     string
	TakerAssetType AssetType
	TakerAssetID   *big.Int
	MakerAmount    *big.Int
	TakerAmount    *big.Int
	ActualTaker    string
}

// RemainingStatus interprets the AugustusRFQ remaining slot of an order:
// zero means never touched, one means filled or cancelled, any other value
// is the remaining maker amount plus one.
type RemainingStatus struct {
	Raw       *big.Int
	Untouched bool
	Closed    bool
	Remaining *big.Int
}

func newRemainingStatus(raw *big.Int) *RemainingStatus {
	status := &RemainingStatus{Raw: raw, Remaining: new(big.Int)}
	switch {
	case raw.Sign() == 0:
		status.Untouched = true
	case raw.Cmp(big.NewInt(1)) == 0:
		status.Closed = true
	default:
		status.Remaining.Sub(raw, big.NewInt(1))
	}
	return status
}
