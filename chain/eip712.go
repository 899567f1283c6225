package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// EIP712 Domain constants of the AugustusRFQ contract
const (
	EIP712DomainName    = "AUGUSTUS RFQ"
	EIP712DomainVersion = "1"
)

// Pre-computed type hashes using keccak256
var (
	// EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)
	EIP712DomainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)",
	))

	OrderTypeHash = crypto.Keccak256Hash([]byte(
		"Order(uint256 nonceAndMeta,uint128 expiry,address makerAsset,address takerAsset,address maker,address taker,uint256 makerAmount,uint256 takerAmount)",
	))

	OrderNFTTypeHash = crypto.Keccak256Hash([]byte(
		"OrderNFT(uint256 nonceAndMeta,uint128 expiry,uint256 makerAsset,uint256 makerAssetId,uint256 takerAsset,uint256 takerAssetId,address maker,address taker,uint256 makerAmount,uint256 takerAmount)",
	))
)

var (
	domainFields = []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	}
	orderFields = []apitypes.Type{
		{Name: "nonceAndMeta", Type: "uint256"},
		{Name: "expiry", Type: "uint128"},
		{Name: "makerAsset", Type: "address"},
		{Name: "takerAsset", Type: "address"},
		{Name: "maker", Type: "address"},
		{Name: "taker", Type: "address"},
		{Name: "makerAmount", Type: "uint256"},
		{Name: "takerAmount", Type: "uint256"},
	}
	orderNFTFields = []apitypes.Type{
		{Name: "nonceAndMeta", Type: "uint256"},
		{Name: "expiry", Type: "uint128"},
		{Name: "makerAsset", Type: "uint256"},
		{Name: "makerAssetId", Type: "uint256"},
		{Name: "takerAsset", Type: "uint256"},
		{Name: "takerAssetId", Type: "uint256"},
		{Name: "maker", Type: "address"},
		{Name: "taker", Type: "address"},
		{Name: "makerAmount", Type: "uint256"},
		{Name: "takerAmount", Type: "uint256"},
	}
)

// EIP712Domain represents the EIP712 domain separator data
type EIP712Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// NewEIP712Domain creates a new EIP712Domain with the standard values
func NewEIP712Domain(chainID *big.Int, verifyingContract common.Address) *EIP712Domain {
	return &EIP712Domain{
		Name:              EIP712DomainName,
		Version:           EIP712DomainVersion,
		ChainID:           chainID,
		VerifyingContract: verifyingContract,
	}
}

// Hash computes the EIP712 domain separator hash
func (d *EIP712Domain) Hash() (common.Hash, error) {
	encoded, err := packWords(
		[]string{"bytes32", "bytes32", "bytes32", "uint256", "address"},
		EIP712DomainTypeHash,
		crypto.Keccak256Hash([]byte(d.Name)),
		crypto.Keccak256Hash([]byte(d.Version)),
		orZero(d.ChainID),
		d.VerifyingContract,
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode domain separator: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// StructHash computes the EIP712 struct hash of the order
func (o Order) StructHash() (common.Hash, error) {
	if err := checkExpiry(o.Expiry); err != nil {
		return common.Hash{}, err
	}
	encoded, err := packWords(
		[]string{"bytes32", "uint256", "uint128", "address", "address", "address", "address", "uint256", "uint256"},
		OrderTypeHash,
		orZero(o.NonceAndMeta),
		big.NewInt(o.Expiry),
		o.MakerAsset,
		o.TakerAsset,
		o.Maker,
		o.Taker,
		orZero(o.MakerAmount),
		orZero(o.TakerAmount),
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode order struct: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// StructHash computes the EIP712 struct hash of the NFT order
func (o OrderNFT) StructHash() (common.Hash, error) {
	if err := checkExpiry(o.Expiry); err != nil {
		return common.Hash{}, err
	}
	encoded, err := packWords(
		[]string{"bytes32", "uint256", "uint128", "uint256", "uint256", "uint256", "uint256", "address", "address", "uint256", "uint256"},
		OrderNFTTypeHash,
		orZero(o.NonceAndMeta),
		big.NewInt(o.Expiry),
		orZero(o.MakerAsset),
		orZero(o.MakerAssetID),
		orZero(o.TakerAsset),
		orZero(o.TakerAssetID),
		o.Maker,
		o.Taker,
		orZero(o.MakerAmount),
		orZero(o.TakerAmount),
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode order nft struct: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// CreateSignHash creates the final EIP712 hash to be signed:
// keccak256("\x19\x01" ++ domainSeparator ++ structHash)
func CreateSignHash(domain *EIP712Domain, structHash common.Hash) (common.Hash, error) {
	domainSeparator, err := domain.Hash()
	if err != nil {
		return common.Hash{}, err
	}

	data := make([]byte, 0, 2+32+32)
	data = append(data, 0x19, 0x01)
	data = append(data, domainSeparator.Bytes()...)
	data = append(data, structHash.Bytes()...)

	return crypto.Keccak256Hash(data), nil
}

// OrderTypedData returns the eth_signTypedData_v4 payload for an order
func OrderTypedData(domain *EIP712Domain, o Order) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainFields,
			"Order":        orderFields,
		},
		PrimaryType: "Order",
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"nonceAndMeta": decimalString(o.NonceAndMeta),
			"expiry":       fmt.Sprintf("%d", o.Expiry),
			"makerAsset":   o.MakerAsset.Hex(),
			"takerAsset":   o.TakerAsset.Hex(),
			"maker":        o.Maker.Hex(),
			"taker":        o.Taker.Hex(),
			"makerAmount":  decimalString(o.MakerAmount),
			"takerAmount":  decimalString(o.TakerAmount),
		},
	}
}

// OrderNFTTypedData returns the eth_signTypedData_v4 payload for an NFT order
func OrderNFTTypedData(domain *EIP712Domain, o OrderNFT) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainFields,
			"OrderNFT":     orderNFTFields,
		},
		PrimaryType: "OrderNFT",
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"nonceAndMeta": decimalString(o.NonceAndMeta),
			"expiry":       fmt.Sprintf("%d", o.Expiry),
			"makerAsset":   decimalString(o.MakerAsset),
			"makerAssetId": decimalString(o.MakerAssetID),
			"takerAsset":   decimalString(o.TakerAsset),
			"takerAssetId": decimalString(o.TakerAssetID),
			"maker":        o.Maker.Hex(),
			"taker":        o.Taker.Hex(),
			"makerAmount":  decimalString(o.MakerAmount),
			"takerAmount":  decimalString(o.TakerAmount),
		},
	}
}

// HashTypedData computes the EIP712 digest of a typed data payload
func HashTypedData(typedData apitypes.TypedData) (common.Hash, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash domain: %w", err)
	}

	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash message: %w", err)
	}

	rawData := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(typedDataHash)))
	return crypto.Keccak256Hash(rawData), nil
}

func (d *EIP712Domain) typedDataDomain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           (*math.HexOrDecimal256)(orZero(d.ChainID)),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

// packWords ABI-encodes static values, one 32-byte word each
func packWords(types []string, values ...interface{}) ([]byte, error) {
	arguments := make(abi.Arguments, 0, len(types))
	for _, name := range types {
		t, err := abi.NewType(name, "", nil)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, abi.Argument{Type: t})
	}
	return arguments.Pack(values...)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
