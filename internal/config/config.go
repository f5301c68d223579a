// Package config loads the demo backend configuration from an optional file
// and CVN1_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

const envPrefix = "CVN1"

const (
	keyNetwork         = "network"
	keyNodeURL         = "node_url"
	keyIndexerURL      = "indexer_url"
	keyAPIKey          = "api_key"
	keyContractAddress = "contract_address"
	keyListenAddress   = "listen_address"
	keyLogLevel        = "log_level"
	keyReadRetries     = "read_retries"
	keyViewModule      = "view_module"
)

var (
	defaultListenAddress = "127.0.0.1:8080"
	defaultLogLevel      = "info"
)

type Config struct {
	Network         string `json:"network"`
	NodeURL         string `json:"node_url"`
	IndexerURL      string `json:"indexer_url"`
	APIKey          string `json:"api_key"`
	ContractAddress string `json:"contract_address"`
	ListenAddress   string `json:"listen_address"`
	LogLevel        string `json:"log_level"`
	ReadRetries     int    `json:"read_retries"`
	ViewModule      string `json:"view_module"`
}

// String renders the config as JSON with secrets masked.
func (c *Config) String() string {
	clone := *c
	if clone.APIKey != "" {
		clone.APIKey = "••••••"
	}
	encoded, err := json.MarshalIndent(clone, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(encoded)
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// Load reads configFile when it is set, then overlays the environment.
// Environment variables win over the file. The node URL, network and
// contract address also honour the CEDRA_* and CVN1_ADDRESS names used by
// the other binaries.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyNetwork, shared.NetworkTestnet)
	v.SetDefault(keyListenAddress, defaultListenAddress)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyReadRetries, 0)

	aliases := map[string][]string{
		keyNetwork:         {"CVN1_NETWORK", "CEDRA_NETWORK"},
		keyNodeURL:         {"CVN1_NODE_URL", "CEDRA_NODE_URL"},
		keyIndexerURL:      {"CVN1_INDEXER_URL", "CEDRA_INDEXER_URL"},
		keyContractAddress: {"CVN1_CONTRACT_ADDRESS", "CVN1_ADDRESS"},
	}
	for key, names := range aliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	network, err := shared.NormalizeNetwork(v.GetString(keyNetwork))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Network:         network,
		NodeURL:         strings.TrimSpace(v.GetString(keyNodeURL)),
		IndexerURL:      strings.TrimSpace(v.GetString(keyIndexerURL)),
		APIKey:          strings.TrimSpace(v.GetString(keyAPIKey)),
		ContractAddress: strings.TrimSpace(v.GetString(keyContractAddress)),
		ListenAddress:   strings.TrimSpace(v.GetString(keyListenAddress)),
		LogLevel:        strings.TrimSpace(v.GetString(keyLogLevel)),
		ReadRetries:     v.GetInt(keyReadRetries),
		ViewModule:      strings.TrimSpace(v.GetString(keyViewModule)),
	}

	if config.ContractAddress == "" {
		if network != shared.NetworkTestnet {
			return nil, fmt.Errorf("contract address is required on %s", network)
		}
		// The demo frontend was published against its own deployment.
		config.ContractAddress = shared.DemoTestnetContractAddress
		if config.ViewModule == "" {
			// That deployment serves its views from vaulted_collection.
			config.ViewModule = cvn1.VaultedCollectionModule
		}
	}
	if _, err := config.Level(); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	if config.ReadRetries < 0 {
		return nil, fmt.Errorf("read retries must not be negative")
	}
	if config.ListenAddress == "" {
		return nil, fmt.Errorf("listen address is required")
	}

	return config, nil
}
