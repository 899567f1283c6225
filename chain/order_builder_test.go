package chain

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const (
	addrMaker      = "0xabc0000000000000000000000000000000000001"
	addrTaker      = "0xabc0000000000000000000000000000000000002"
	addrMakerAsset = "0xabc0000000000000000000000000000000000003"
	addrTakerAsset = "0xabc0000000000000000000000000000000000004"
)

func exampleOrderData() *OrderData {
	return &OrderData{
		Expiry:       1700000000,
		Maker:        addrMaker,
		Taker:        addrTaker,
		MakerAsset:   addrMakerAsset,
		TakerAsset:   addrTakerAsset,
		MakerAmount:  big.NewInt(1000),
		TakerAmount:  big.NewInt(2000),
		NonceAndMeta: big.NewInt(42),
	}
}

func TestBuildOrderExample(t *testing.T) {
	ob := NewOrderBuilder(nil)

	order, err := ob.BuildOrder(exampleOrderData())
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	if order.NonceAndMeta.Int64() != 42 {
		t.Errorf("nonceAndMeta = %s, want 42", order.NonceAndMeta)
	}
	if order.Expiry != 1700000000 {
		t.Errorf("expiry = %d, want 1700000000", order.Expiry)
	}
	if order.MakerAmount.Int64() != 1000 || order.TakerAmount.Int64() != 2000 {
		t.Errorf("amounts = (%s, %s), want (1000, 2000)", order.MakerAmount, order.TakerAmount)
	}

	// Upper-cased input must produce the same checksum form
	upper := exampleOrderData()
	upper.Maker = "0x" + strings.ToUpper(addrMaker[2:])
	upper.Taker = "0x" + strings.ToUpper(addrTaker[2:])
	upper.MakerAsset = "0x" + strings.ToUpper(addrMakerAsset[2:])
	upper.TakerAsset = "0x" + strings.ToUpper(addrTakerAsset[2:])
	again, err := ob.BuildOrder(upper)
	if err != nil {
		t.Fatalf("BuildOrder upper: %v", err)
	}

	pairs := []struct {
		name      string
		got, from common.Address
		input     string
	}{
		{"maker", order.Maker, again.Maker, addrMaker},
		{"taker", order.Taker, again.Taker, addrTaker},
		{"makerAsset", order.MakerAsset, again.MakerAsset, addrMakerAsset},
		{"takerAsset", order.TakerAsset, again.TakerAsset, addrTakerAsset},
	}
	for _, p := range pairs {
		want, err := ChecksumAddress(p.input)
		if err != nil {
			t.Fatalf("checksum %s: %v", p.input, err)
		}
		if p.got.Hex() != want || p.from.Hex() != want {
			t.Errorf("%s = %s / %s, want %s", p.name, p.got.Hex(), p.from.Hex(), want)
		}
	}

	raw, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["nonceAndMeta"] != "42" {
		t.Errorf("json nonceAndMeta = %v, want \"42\"", decoded["nonceAndMeta"])
	}
	if decoded["maker"] != order.Maker.Hex() {
		t.Errorf("json maker = %v, want %s", decoded["maker"], order.Maker.Hex())
	}
	if decoded["makerAmount"] != "1000" {
		t.Errorf("json makerAmount = %v, want \"1000\"", decoded["makerAmount"])
	}
}

func TestBuildOrderRandomNonce(t *testing.T) {
	ob := NewOrderBuilder(nil)
	data := exampleOrderData()
	data.NonceAndMeta = nil

	first, err := ob.BuildOrder(data)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	second, err := ob.BuildOrder(data)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	for _, n := range []*big.Int{first.NonceAndMeta, second.NonceAndMeta} {
		if n.Sign() < 0 || n.Cmp(MaxUint256) > 0 {
			t.Errorf("nonceAndMeta %s out of uint256 range", n)
		}
	}
	if first.NonceAndMeta.Cmp(second.NonceAndMeta) == 0 {
		t.Error("two orders drew the same nonce")
	}
}

func TestBuildOrderDoesNotAliasInputs(t *testing.T) {
	data := exampleOrderData()
	order, err := NewOrderBuilder(nil).BuildOrder(data)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	data.MakerAmount.SetInt64(1)
	data.NonceAndMeta.SetInt64(1)
	if order.MakerAmount.Int64() != 1000 || order.NonceAndMeta.Int64() != 42 {
		t.Errorf("order changed with its inputs: amount %s nonce %s", order.MakerAmount, order.NonceAndMeta)
	}
}

func TestBuildOrderZeroAmounts(t *testing.T) {
	data := exampleOrderData()
	data.MakerAmount = nil
	data.TakerAmount = big.NewInt(0)

	order, err := NewOrderBuilder(nil).BuildOrder(data)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if order.MakerAmount.Sign() != 0 || order.TakerAmount.Sign() != 0 {
		t.Errorf("amounts = (%s, %s), want (0, 0)", order.MakerAmount, order.TakerAmount)
	}
}

func TestBuildOrderErrors(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)

	cases := []struct {
		name   string
		mutate func(*OrderData)
		want   error
	}{
		{"bad maker", func(d *OrderData) { d.Maker = "0xabc" }, ErrInvalidAddress},
		{"bad taker asset", func(d *OrderData) { d.TakerAsset = "" }, ErrInvalidAddress},
		{"amount overflow", func(d *OrderData) { d.MakerAmount = tooBig }, ErrEncodingOverflow},
		{"negative amount", func(d *OrderData) { d.TakerAmount = big.NewInt(-5) }, ErrEncodingOverflow},
		{"nonce overflow", func(d *OrderData) { d.NonceAndMeta = tooBig }, ErrEncodingOverflow},
		{"negative expiry", func(d *OrderData) { d.Expiry = -1 }, ErrEncodingOverflow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := exampleOrderData()
			tc.mutate(data)
			_, err := NewOrderBuilder(nil).BuildOrder(data)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	var addrErr *InvalidAddressError
	data := exampleOrderData()
	data.Maker = "0xzz"
	if _, err := NewOrderBuilder(nil).BuildOrder(data); !errors.As(err, &addrErr) || addrErr.Field != "maker" {
		t.Errorf("err = %v, want InvalidAddressError for maker", err)
	}
}

func TestBuildOrderEntropyUnavailable(t *testing.T) {
	data := exampleOrderData()
	data.NonceAndMeta = nil

	_, err := NewOrderBuilder(NewRandomSource(failingReader{})).BuildOrder(data)
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Errorf("err = %v, want ErrEntropyUnavailable", err)
	}
}

func exampleOrderNFTData() *OrderNFTData {
	return &OrderNFTData{
		Maker:          addrMaker,
		Taker:          addrTaker,
		MakerAsset:     addrMakerAsset,
		MakerAssetType: AssetTypeERC721,
		MakerAssetID:   big.NewInt(77),
		TakerAsset:     addrTakerAsset,
		TakerAssetType: AssetTypeERC20,
		MakerAmount:    big.NewInt(1),
		TakerAmount:    big.NewInt(5000),
		NonceAndMeta:   big.NewInt(9),
	}
}

func TestBuildOrderNFT(t *testing.T) {
	order, err := NewOrderBuilder(nil).BuildOrderNFT(exampleOrderNFTData())
	if err != nil {
		t.Fatalf("BuildOrderNFT: %v", err)
	}

	maker, err := UnpackTaggedAsset(order.MakerAsset)
	if err != nil {
		t.Fatalf("unpack maker asset: %v", err)
	}
	if maker.Address != common.HexToAddress(addrMakerAsset) || maker.Type != AssetTypeERC721 {
		t.Errorf("maker asset = (%s, %s), want (%s, ERC721)", maker.Address.Hex(), maker.Type, addrMakerAsset)
	}

	taker, err := UnpackTaggedAsset(order.TakerAsset)
	if err != nil {
		t.Fatalf("unpack taker asset: %v", err)
	}
	// ERC20 tag is zero, so the field equals the plain address
	if order.TakerAsset.Cmp(new(big.Int).SetBytes(common.HexToAddress(addrTakerAsset).Bytes())) != 0 {
		t.Errorf("taker asset = %x, want plain address", order.TakerAsset)
	}
	if taker.Type != AssetTypeERC20 {
		t.Errorf("taker asset type = %s, want ERC20", taker.Type)
	}

	if order.MakerAssetID.Int64() != 77 {
		t.Errorf("makerAssetId = %s, want 77", order.MakerAssetID)
	}
	if order.TakerAssetID.Sign() != 0 {
		t.Errorf("takerAssetId = %s, want 0", order.TakerAssetID)
	}
	if order.Maker.Hex() != common.HexToAddress(addrMaker).Hex() {
		t.Errorf("maker = %s", order.Maker.Hex())
	}
	if order.NonceAndMeta.Int64() != 9 {
		t.Errorf("nonceAndMeta = %s, want 9", order.NonceAndMeta)
	}
}

func TestBuildOrderNFTErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OrderNFTData)
		want   error
	}{
		{"unknown maker asset type", func(d *OrderNFTData) { d.MakerAssetType = AssetType(200) }, ErrEncodingOverflow},
		{"bad taker asset", func(d *OrderNFTData) { d.TakerAsset = "0x1" }, ErrInvalidAddress},
		{"asset id overflow", func(d *OrderNFTData) { d.TakerAssetID = new(big.Int).Lsh(big.NewInt(1), 300) }, ErrEncodingOverflow},
		{"bad maker", func(d *OrderNFTData) { d.Maker = "maker" }, ErrInvalidAddress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := exampleOrderNFTData()
			tc.mutate(data)
			_, err := NewOrderBuilder(nil).BuildOrderNFT(data)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
