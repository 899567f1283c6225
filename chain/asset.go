package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// TaggedAsset is the decoded form of an NFT order asset field:
//
//	bits [0,160)   asset contract address
//	bits [160,256) AssetType
type TaggedAsset struct {
	Address common.Address
	Type    AssetType
}

// Pack encodes the asset address and its type into one uint256
func (a TaggedAsset) Pack() (*big.Int, error) {
	if !a.Type.IsValid() {
		return nil, &EncodingOverflowError{Field: "assetType", Bits: AssetTagBits, Value: fmt.Sprint(uint8(a.Type))}
	}
	word := uint256.NewInt(uint64(a.Type))
	word.Lsh(word, AddressBits)
	word.Or(word, addressWord(a.Address))
	return word.ToBig(), nil
}

// UnpackTaggedAsset splits an NFT asset field into address and type
func UnpackTaggedAsset(v *big.Int) (TaggedAsset, error) {
	word, err := toUint256("asset", v, ContainerBits)
	if err != nil {
		return TaggedAsset{}, err
	}

	tag := new(uint256.Int).Rsh(word, AddressBits)
	if !tag.IsUint64() || tag.Uint64() > uint64(AssetTypeERC721) {
		return TaggedAsset{}, &EncodingOverflowError{Field: "assetType", Bits: AssetTagBits, Value: tag.ToBig().String()}
	}

	return TaggedAsset{
		Address: wordAddress(word),
		Type:    AssetType(tag.Uint64()),
	}, nil
}

// PackAssetWithType embeds kind above the 160 address bits of asset
func PackAssetWithType(asset string, kind AssetType) (*big.Int, error) {
	addr, err := ParseAddress("asset", asset)
	if err != nil {
		return nil, err
	}
	return TaggedAsset{Address: addr, Type: kind}.Pack()
}
