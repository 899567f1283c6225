package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// fakeEth serves the eth_ methods ContractCaller uses
type fakeEth struct {
	chainID   int64
	code      map[common.Address]hexutil.Bytes
	remaining *big.Int
}

func (f *fakeEth) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(f.chainID))
}

func (f *fakeEth) GetCode(addr common.Address, block string) hexutil.Bytes {
	return f.code[addr]
}

func (f *fakeEth) Call(args map[string]interface{}, block string) hexutil.Bytes {
	return common.LeftPadBytes(f.remaining.Bytes(), 32)
}

func newTestCaller(t *testing.T, eth *fakeEth) *ContractCaller {
	t.Helper()

	server := rpc.NewServer()
	if err := server.RegisterName("eth", eth); err != nil {
		t.Fatalf("register fake eth: %v", err)
	}
	caller := NewContractCallerWithClient(ethclient.NewClient(rpc.DialInProc(server)))
	t.Cleanup(func() {
		caller.Close()
		server.Stop()
	})
	return caller
}

func TestContractCaller(t *testing.T) {
	deployed := common.HexToAddress("0xe92b586627ccA7a83dC919cc7127196d70f55a06")
	eth := &fakeEth{
		chainID:   137,
		code:      map[common.Address]hexutil.Bytes{deployed: {0x60, 0x80}},
		remaining: big.NewInt(501),
	}
	caller := newTestCaller(t, eth)
	ctx := context.Background()

	id, err := caller.ChainID(ctx)
	if err != nil {
		t.Fatalf("ChainID: %v", err)
	}
	if id.Int64() != 137 {
		t.Errorf("chain id = %s, want 137", id)
	}

	ok, err := caller.HasCode(ctx, deployed)
	if err != nil {
		t.Fatalf("HasCode: %v", err)
	}
	if !ok {
		t.Error("deployed contract reported without code")
	}

	ok, err = caller.HasCode(ctx, common.HexToAddress(addrMaker))
	if err != nil {
		t.Fatalf("HasCode: %v", err)
	}
	if ok {
		t.Error("empty account reported with code")
	}

	remaining, err := caller.Remaining(ctx, deployed, common.HexToHash("0x01"))
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining.Int64() != 501 {
		t.Errorf("remaining = %s, want 501", remaining)
	}
}
