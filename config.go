package augustusrfq

import (
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Network identifies a chain by its EIP-155 chain id
type Network int64

const (
	NetworkEthereum  Network = 1
	NetworkOptimism  Network = 10
	NetworkBSC       Network = 56
	NetworkPolygon   Network = 137
	NetworkFantom    Network = 250
	NetworkArbitrum  Network = 42161
	NetworkAvalanche Network = 43114
)

// SupportedNetworks lists the networks with a default AugustusRFQ deployment
var SupportedNetworks = []Network{
	NetworkEthereum,
	NetworkOptimism,
	NetworkBSC,
	NetworkPolygon,
	NetworkFantom,
	NetworkArbitrum,
	NetworkAvalanche,
}

// ChainID returns the network as an EIP-155 chain id
func (n Network) ChainID() *big.Int {
	return big.NewInt(int64(n))
}

func (n Network) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// ContractAddresses holds contract addresses for each network
type ContractAddresses struct {
	AugustusRFQ string `toml:"augustus_rfq"`
}

// DefaultContractAddresses returns a fresh copy of the known deployments
func DefaultContractAddresses() map[Network]ContractAddresses {
	return map[Network]ContractAddresses{
		NetworkEthereum:  {AugustusRFQ: "0xe92b586627ccA7a83dC919cc7127196d70f55a06"},
		NetworkOptimism:  {AugustusRFQ: "0x0927FD43a7a87E3E8b81Df2c44B03C4756849F6D"},
		NetworkBSC:       {AugustusRFQ: "0x8DcDfe88EF0351f27437284D0710cD65b64282d2"},
		NetworkPolygon:   {AugustusRFQ: "0xF3CD476C3C4D3Ac5cA2724767f269070CA09A043"},
		NetworkFantom:    {AugustusRFQ: "0x2DF17455B96Dde3618FD6B1C3a9AA06D6aB89347"},
		NetworkArbitrum:  {AugustusRFQ: "0x0927FD43a7a87E3E8b81Df2c44B03C4756849F6D"},
		NetworkAvalanche: {AugustusRFQ: "0x34302c4267d0dA0A8c65510282Cc22E9e39df51f"},
	}
}

// ContractRegistry resolves the protocol-operated taker of managed orders
type ContractRegistry interface {
	AugustusRFQ(network Network) (common.Address, error)
}

// StaticRegistry is a ContractRegistry backed by a fixed map
type StaticRegistry map[Network]common.Address

// NewStaticRegistry validates and converts a contract address table
func NewStaticRegistry(contracts map[Network]ContractAddresses) (StaticRegistry, error) {
	registry := make(StaticRegistry, len(contracts))
	for network, c := range contracts {
		if !common.IsHexAddress(c.AugustusRFQ) {
			return nil, &InvalidParamError{
				Message: fmt.Sprintf("network %s: invalid AugustusRFQ address %q", network, c.AugustusRFQ),
			}
		}
		registry[network] = common.HexToAddress(c.AugustusRFQ)
	}
	return registry, nil
}

// DefaultRegistry returns a registry over DefaultContractAddresses
func DefaultRegistry() StaticRegistry {
	registry, err := NewStaticRegistry(DefaultContractAddresses())
	if err != nil {
		panic("invalid default contract addresses: " + err.Error())
	}
	return registry
}

// AugustusRFQ returns the AugustusRFQ address for network
func (r StaticRegistry) AugustusRFQ(network Network) (common.Address, error) {
	addr, ok := r[network]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
	return addr, nil
}

// Config is the file/environment configuration of the SDK
type Config struct {
	Network  Network `toml:"network"`
	LogLevel string  `toml:"log_level"`
	RPCURL   string  `toml:"rpc_url"`

	// Contracts overrides the default deployments, keyed by chain id
	Contracts map[string]ContractAddresses `toml:"contracts"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Network:   NetworkEthereum,
		LogLevel:  "info",
		Contracts: map[string]ContractAddresses{},
	}
}

// LoadConfig reads an optional TOML file at path on top of the defaults,
// loads envPath (or ./.env when empty) if it exists and applies
// AUGUSTUS_RFQ_* environment overrides. An env file that exists but does not
// parse is an error. Priority: ENV > .env > file > defaults.
// The returned Config has not been validated.
func LoadConfig(path, envPath string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}
	if cfg.Contracts == nil {
		cfg.Contracts = map[string]ContractAddresses{}
	}

	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AUGUSTUS_RFQ_NETWORK"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &InvalidParamError{Message: fmt.Sprintf("AUGUSTUS_RFQ_NETWORK: invalid chain id %q", v)}
		}
		cfg.Network = Network(id)
	}
	if v := os.Getenv("AUGUSTUS_RFQ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AUGUSTUS_RFQ_RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	// Overrides the contract of the selected network only
	if v := os.Getenv("AUGUSTUS_RFQ_CONTRACT"); v != "" {
		cfg.Contracts[cfg.Network.String()] = ContractAddresses{AugustusRFQ: v}
	}
	return nil
}

// Validate checks the log level, the contract table and that the selected
// network has a deployment
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &InvalidParamError{Message: fmt.Sprintf("invalid log level %q", c.LogLevel)}
	}
	registry, err := c.Registry()
	if err != nil {
		return err
	}
	if _, err := registry.AugustusRFQ(c.Network); err != nil {
		return err
	}
	return nil
}

// Registry merges the configured contracts over the defaults
func (c *Config) Registry() (StaticRegistry, error) {
	contracts := DefaultContractAddresses()
	for key, addrs := range c.Contracts {
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return nil, &InvalidParamError{Message: fmt.Sprintf("contracts: invalid chain id %q", key)}
		}
		contracts[Network(id)] = addrs
	}
	return NewStaticRegistry(contracts)
}
