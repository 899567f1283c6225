package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// OrderBuilder builds AugustusRFQ orders. It does not sign them.
type OrderBuilder struct {
	random RandomSource
}

// NewOrderBuilder creates a new OrderBuilder drawing nonces from random.
// A nil source means crypto/rand.
func NewOrderBuilder(random RandomSource) *OrderBuilder {
	if random == nil {
		random = NewRandomSource(nil)
	}
	return &OrderBuilder{random: random}
}

// PackNonceWithTaker draws a fresh nonceAndMeta carrying taker
func (ob *OrderBuilder) PackNonceWithTaker(taker string) (*big.Int, error) {
	return PackNonceWithTaker(ob.random, taker)
}

// BuildOrder builds an order from OrderData
func (ob *OrderBuilder) BuildOrder(data *OrderData) (Order, error) {
	if data == nil {
		return Order{}, fmt.Errorf("order data is required")
	}

	nonce, err := ob.nonceOrRandom(data.NonceAndMeta)
	if err != nil {
		return Order{}, err
	}
	if err := checkExpiry(data.Expiry); err != nil {
		return Order{}, err
	}

	addrs, err := parseAddresses(
		"maker", data.Maker,
		"taker", data.Taker,
		"makerAsset", data.MakerAsset,
		"takerAsset", data.TakerAsset,
	)
	if err != nil {
		return Order{}, err
	}

	makerAmount, err := checkedUint("makerAmount", data.MakerAmount, ContainerBits)
	if err != nil {
		return Order{}, err
	}
	takerAmount, err := checkedUint("takerAmount", data.TakerAmount, ContainerBits)
	if err != nil {
		return Order{}, err
	}

	return Order{
		NonceAndMeta: nonce,
		Expiry:       data.Expiry,
		Maker:        addrs[0],
		Taker:        addrs[1],
		MakerAsset:   addrs[2],
		TakerAsset:   addrs[3],
		MakerAmount:  makerAmount,
		TakerAmount:  takerAmount,
	}, nil
}

// BuildOrderNFT builds an NFT order from OrderNFTData
func (ob *OrderBuilder) BuildOrderNFT(data *OrderNFTData) (OrderNFT, error) {
	if data == nil {
		return OrderNFT{}, fmt.Errorf("order data is required")
	}

	nonce, err := ob.nonceOrRandom(data.NonceAndMeta)
	if err != nil {
		return OrderNFT{}, err
	}
	if err := checkExpiry(data.Expiry); err != nil {
		return OrderNFT{}, err
	}

	addrs, err := parseAddresses("maker", data.Maker, "taker", data.Taker)
	if err != nil {
		return OrderNFT{}, err
	}

	makerAsset, err := PackAssetWithType(data.MakerAsset, data.MakerAssetType)
	if err != nil {
		return OrderNFT{}, fmt.Errorf("makerAsset: %w", err)
	}
	takerAsset, err := PackAssetWithType(data.TakerAsset, data.TakerAssetType)
	if err != nil {
		return OrderNFT{}, fmt.Errorf("takerAsset: %w", err)
	}

	// Asset ids default to zero for ERC20-like assets
	makerAssetID, err := checkedUint("makerAssetId", data.MakerAssetID, ContainerBits)
	if err != nil {
		return OrderNFT{}, err
	}
	takerAssetID, err := checkedUint("takerAssetId", data.TakerAssetID, ContainerBits)
	if err != nil {
		return OrderNFT{}, err
	}
	makerAmount, err := checkedUint("makerAmount", data.MakerAmount, ContainerBits)
	if err != nil {
		return OrderNFT{}, err
	}
	takerAmount, err := checkedUint("takerAmount", data.TakerAmount, ContainerBits)
	if err != nil {
		return OrderNFT{}, err
	}

	return OrderNFT{
		NonceAndMeta: nonce,
		Expiry:       data.Expiry,
		Maker:        addrs[0],
		Taker:        addrs[1],
		MakerAsset:   makerAsset,
		MakerAssetID: makerAssetID,
		TakerAsset:   takerAsset,
		TakerAssetID: takerAssetID,
		MakerAmount:  makerAmount,
		TakerAmount:  takerAmount,
	}, nil
}

func (ob *OrderBuilder) nonceOrRandom(nonce *big.Int) (*big.Int, error) {
	if nonce != nil {
		return checkedUint("nonceAndMeta", nonce, ContainerBits)
	}
	return ob.random.RandomUint(MaxUint256)
}

// parseAddresses takes field/value pairs and returns the parsed addresses in order
func parseAddresses(pairs ...string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		addr, err := ParseAddress(pairs[i], pairs[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}
