package chain

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var testAddresses = []string{
	"0x0000000000000000000000000000000000000000",
	"0x0000000000000000000000000000000000000001",
	"0xabc0000000000000000000000000000000000002",
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xffffffffffffffffffffffffffffffffffffffff",
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func fixedSource(b byte) RandomSource {
	return NewRandomSource(bytes.NewReader(bytes.Repeat([]byte{b}, 32)))
}

func TestPackNonceWithTakerRoundTrip(t *testing.T) {
	src := NewRandomSource(nil)

	for _, addr := range testAddresses {
		first, err := PackNonceWithTaker(src, addr)
		if err != nil {
			t.Fatalf("pack %s: %v", addr, err)
		}
		second, err := PackNonceWithTaker(src, addr)
		if err != nil {
			t.Fatalf("pack %s: %v", addr, err)
		}

		if first.BitLen() > ContainerBits {
			t.Errorf("nonceAndMeta has %d bits, want <= %d", first.BitLen(), ContainerBits)
		}
		if first.Cmp(second) == 0 {
			t.Errorf("two draws for %s produced the same nonceAndMeta %s", addr, first)
		}

		for _, v := range []*big.Int{first, second} {
			meta, err := UnpackNonceAndMeta(v)
			if err != nil {
				t.Fatalf("unpack: %v", err)
			}
			if meta.Taker != common.HexToAddress(addr) {
				t.Errorf("taker = %s, want %s", meta.Taker.Hex(), common.HexToAddress(addr).Hex())
			}
		}
	}
}

func TestPackNonceWithTakerBitLayout(t *testing.T) {
	taker := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	takerInt := new(big.Int).SetBytes(common.HexToAddress(taker).Bytes())

	// All-ones entropy: the upper 96 bits stay set, the low 160 are the taker
	got, err := PackNonceWithTaker(fixedSource(0xff), taker)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	upper := new(big.Int).Lsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1)), 160)
	want := new(big.Int).Or(upper, takerInt)
	if got.Cmp(want) != 0 {
		t.Errorf("nonceAndMeta = %x, want %x", got, want)
	}

	// Zero entropy leaves only the taker
	got, err = PackNonceWithTaker(fixedSource(0x00), taker)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if got.Cmp(takerInt) != 0 {
		t.Errorf("nonceAndMeta = %x, want %x", got, takerInt)
	}

	// The taker span is bits [0,160)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 160), big.NewInt(1))
	if low := new(big.Int).And(got, mask); low.Cmp(takerInt) != 0 {
		t.Errorf("low 160 bits = %x, want %x", low, takerInt)
	}
}

func TestPackNonceWithTakerErrors(t *testing.T) {
	if _, err := PackNonceWithTaker(NewRandomSource(nil), "0x1234"); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("short address: err = %v, want ErrInvalidAddress", err)
	}

	_, err := PackNonceWithTaker(NewRandomSource(failingReader{}), testAddresses[1])
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Errorf("failing reader: err = %v, want ErrEntropyUnavailable", err)
	}
}

func TestNonceAndMetaPack(t *testing.T) {
	taker := common.HexToAddress(testAddresses[2])

	packed, err := NonceAndMeta{Nonce: uint256.NewInt(7), Taker: taker}.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	want := new(big.Int).Lsh(big.NewInt(7), 160)
	want.Or(want, new(big.Int).SetBytes(taker.Bytes()))
	if packed.Cmp(want) != 0 {
		t.Errorf("packed = %x, want %x", packed, want)
	}

	meta, err := UnpackNonceAndMeta(packed)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if meta.Nonce.Uint64() != 7 || meta.Taker != taker {
		t.Errorf("unpacked = (%d, %s), want (7, %s)", meta.Nonce.Uint64(), meta.Taker.Hex(), taker.Hex())
	}

	tooWide := new(uint256.Int).Lsh(uint256.NewInt(1), NonceBits)
	if _, err := (NonceAndMeta{Nonce: tooWide, Taker: taker}).Pack(); !errors.Is(err, ErrEncodingOverflow) {
		t.Errorf("97-bit nonce: err = %v, want ErrEncodingOverflow", err)
	}
}

func TestUnpackNonceAndMetaRejectsOutOfRange(t *testing.T) {
	cases := []*big.Int{
		new(big.Int).Lsh(big.NewInt(1), 256),
		big.NewInt(-1),
	}
	for _, v := range cases {
		_, err := UnpackNonceAndMeta(v)
		var overflow *EncodingOverflowError
		if !errors.As(err, &overflow) {
			t.Errorf("unpack %s: err = %v, want EncodingOverflowError", v, err)
		}
	}
}
