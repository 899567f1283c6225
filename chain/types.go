package chain

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Bit layout shared by nonceAndMeta and tagged NFT assets. The AugustusRFQ
// contract reads the low 160 bits as an address and the rest as metadata.
const (
	ContainerBits = 256
	AddressBits   = 160
	UpperBits     = ContainerBits - AddressBits

	// NonceBits is the random part of nonceAndMeta, AssetTagBits the asset kind.
	NonceBits    = UpperBits
	AssetTagBits = UpperBits

	assetTypeBits = 8
)

// Compile-time layout checks: the spans must tile the container exactly and
// the tag span must hold every AssetType value.
var (
	_ [ContainerBits - AddressBits - UpperBits]struct{}
	_ [AddressBits + UpperBits - ContainerBits]struct{}
	_ [AssetTagBits - assetTypeBits]struct{}
)

// AssetType identifies the token standard of an NFT order asset
type AssetType uint8

const (
	AssetTypeERC20 AssetType = iota
	AssetTypeERC1155
	AssetTypeERC721
)

// AssetTypes lists every member of the enumeration
var AssetTypes = []AssetType{AssetTypeERC20, AssetTypeERC1155, AssetTypeERC721}

// IsValid reports whether t is a known asset type
func (t AssetType) IsValid() bool {
	return t <= AssetTypeERC721
}

func (t AssetType) String() string {
	switch t {
	case AssetTypeERC20:
		return "ERC20"
	case AssetTypeERC1155:
		return "ERC1155"
	case AssetTypeERC721:
		return "ERC721"
	default:
		return "unknown"
	}
}

// OrderData represents the data for building a fungible order.
// A nil NonceAndMeta asks the builder to draw a random one; nil amounts are zero.
// Negative amounts, nonces and expiries fail with ErrEncodingOverflow since
// the contract fields are unsigned.
type OrderData struct {
	Expiry       int64
	Maker        string
	Taker        string
	MakerAsset   string
	TakerAsset   string
	MakerAmount  *big.Int
	TakerAmount  *big.Int
	NonceAndMeta *big.Int
}

// OrderNFTData represents the data for building an NFT order.
// Integer fields follow the same rules as OrderData.
type OrderNFTData struct {
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
	NonceAndMeta   *big.Int
}

// Order is an AugustusRFQ order ready for EIP-712 signing
type Order struct {
	NonceAndMeta *big.Int
	Expiry       int64
	Maker        common.Address
	Taker        common.Address
	MakerAsset   common.Address
	TakerAsset   common.Address
	MakerAmount  *big.Int
	TakerAmount  *big.Int
}

// OrderNFT is an AugustusRFQ NFT order. MakerAsset and TakerAsset are tagged
// assets: the contract address in the low 160 bits, the AssetType above it.
type OrderNFT struct {
	NonceAndMeta *big.Int
	Expiry       int64
	Maker        common.Address
	Taker        common.Address
	MakerAsset   *big.Int
	MakerAssetID *big.Int
	TakerAsset   *big.Int
	TakerAssetID *big.Int
	MakerAmount  *big.Int
	TakerAmount  *big.Int
}

type orderJSON struct {
	NonceAndMeta string `json:"nonceAndMeta"`
	Expiry       int64  `json:"expiry"`
	Maker        string `json:"maker"`
	Taker        string `json:"taker"`
	MakerAsset   string `json:"makerAsset"`
	TakerAsset   string `json:"takerAsset"`
	MakerAmount  string `json:"makerAmount"`
	TakerAmount  string `json:"takerAmount"`
}

type orderNFTJSON struct {
	NonceAndMeta string `json:"nonceAndMeta"`
	Expiry       int64  `json:"expiry"`
	Maker        string `json:"maker"`
	Taker        string `json:"taker"`
	MakerAsset   string `json:"makerAsset"`
	MakerAssetID string `json:"makerAssetId"`
	TakerAsset   string `json:"takerAsset"`
	TakerAssetID string `json:"takerAssetId"`
	MakerAmount  string `json:"makerAmount"`
	TakerAmount  string `json:"takerAmount"`
}

// MarshalJSON renders integers as decimal strings and addresses in checksum form
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderJSON{
		NonceAndMeta: decimalString(o.NonceAndMeta),
		Expiry:       o.Expiry,
		Maker:        o.Maker.Hex(),
		Taker:        o.Taker.Hex(),
		MakerAsset:   o.MakerAsset.Hex(),
		TakerAsset:   o.TakerAsset.Hex(),
		MakerAmount:  decimalString(o.MakerAmount),
		TakerAmount:  decimalString(o.TakerAmount),
	})
}

// MarshalJSON renders integers as decimal strings and addresses in checksum form
func (o OrderNFT) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderNFTJSON{
		NonceAndMeta: decimalString(o.NonceAndMeta),
		Expiry:       o.Expiry,
		Maker:        o.Maker.Hex(),
		Taker:        o.Taker.Hex(),
		MakerAsset:   decimalString(o.MakerAsset),
		MakerAssetID: decimalString(o.MakerAssetID),
		TakerAsset:   decimalString(o.TakerAsset),
		TakerAssetID: decimalString(o.TakerAssetID),
		MakerAmount:  decimalString(o.MakerAmount),
		TakerAmount:  decimalString(o.TakerAmount),
	})
}

func decimalString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
