// Example usage of the AugustusRFQ order SDK
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	augustusrfq "github.com/kaifufi/augustus-rfq-sdk-go"
	"github.com/kaifufi/augustus-rfq-sdk-go/chain"
)

func main() {
	// Reads augustus.toml when present, then .env and AUGUSTUS_RFQ_* variables
	configPath := ""
	if _, err := os.Stat("augustus.toml"); err == nil {
		configPath = "augustus.toml"
	}
	cfg, err := augustusrfq.LoadConfig(configPath, "")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := augustusrfq.NewClientFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	makerAmount, err := augustusrfq.ToBaseUnits("1500", 6)
	if err != nil {
		log.Fatalf("Invalid maker amount: %v", err)
	}
	takerAmount, err := augustusrfq.ToBaseUnits("0.5", 18)
	if err != nil {
		log.Fatalf("Invalid taker amount: %v", err)
	}

	// Example: managed order, filled through AugustusRFQ on behalf of actualTaker
	fmt.Println("Creating managed order...")
	order, err := client.CreateManagedOrder(augustusrfq.ManagedOrderInput{
		Network:     cfg.Network,
		Expiry:      time.Now().Add(time.Hour).Unix(),
		Maker:       "0x05182E579FDfCf69E4390c3411D8FeA1fb6467cf",
		MakerAsset:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		TakerAsset:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		MakerAmount: makerAmount,
		TakerAmount: takerAmount,
		ActualTaker: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	})
	if err != nil {
		log.Fatalf("Failed to create order: %v", err)
	}
	printJSON("Order", order)

	hash, err := client.OrderHash(cfg.Network, order)
	if err != nil {
		log.Fatalf("Failed to hash order: %v", err)
	}
	fmt.Printf("Order hash to sign: %s\n", hash.Hex())

	// Example: open order, anyone may fill
	fmt.Println("\nCreating open order...")
	open, err := client.CreateOrder(chain.OrderData{
		Expiry:      0,
		Maker:       "0x05182E579FDfCf69E4390c3411D8FeA1fb6467cf",
		Taker:       augustusrfq.ZeroAddress,
		MakerAsset:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		TakerAsset:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		MakerAmount: makerAmount,
		TakerAmount: takerAmount,
	})
	if err != nil {
		log.Fatalf("Failed to create open order: %v", err)
	}
	printJSON("Open order", open)

	// Example: ERC721 for ERC20
	fmt.Println("\nCreating NFT order...")
	nft, err := client.CreateOrderNFT(chain.OrderNFTData{
		Maker:          "0x05182E579FDfCf69E4390c3411D8FeA1fb6467cf",
		Taker:          augustusrfq.ZeroAddress,
		MakerAsset:     "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
		MakerAssetType: augustusrfq.AssetTypeERC721,
		MakerAssetID:   big.NewInt(1234),
		TakerAsset:     "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		TakerAssetType: augustusrfq.AssetTypeERC20,
		MakerAmount:    big.NewInt(1),
		TakerAmount:    order.TakerAmount,
	})
	if err != nil {
		log.Fatalf("Failed to create NFT order: %v", err)
	}
	printJSON("NFT order", nft)

	typed, err := client.OrderNFTTypedData(cfg.Network, nft)
	if err != nil {
		log.Fatalf("Failed to build typed data: %v", err)
	}
	printJSON("NFT typed data", typed)

	if cfg.RPCURL == "" {
		return
	}

	// Example: check the deployment and the managed order's fill state
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	caller, err := chain.NewContractCaller(ctx, cfg.RPCURL)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.RPCURL, err)
	}
	defer caller.Close()

	if err := client.VerifyDeployment(ctx, caller, cfg.Network); err != nil {
		log.Fatalf("Deployment check failed: %v", err)
	}
	status, err := client.OrderStatus(ctx, caller, cfg.Network, hash)
	if err != nil {
		log.Fatalf("Failed to read order status: %v", err)
	}
	fmt.Printf("Order status: untouched=%v closed=%v remaining=%s\n", status.Untouched, status.Closed, status.Remaining)
}

func printJSON(label string, v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal %s: %v", label, err)
		return
	}
	fmt.Printf("%s: %s\n", label, out)
}
