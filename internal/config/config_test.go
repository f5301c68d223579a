package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CVN1_NETWORK", "CEDRA_NETWORK", "CVN1_NODE_URL", "CEDRA_NODE_URL",
		"CVN1_INDEXER_URL", "CEDRA_INDEXER_URL", "CVN1_API_KEY",
		"CVN1_CONTRACT_ADDRESS", "CVN1_ADDRESS", "CVN1_LISTEN_ADDRESS",
		"CVN1_LOG_LEVEL", "CVN1_READ_RETRIES", "CVN1_VIEW_MODULE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	config, err := Load("")
	require.NoError(t, err)
	require.Equal(t, shared.NetworkTestnet, config.Network)
	require.Equal(t, shared.DemoTestnetContractAddress, config.ContractAddress)
	require.Equal(t, "127.0.0.1:8080", config.ListenAddress)
	require.Equal(t, 0, config.ReadRetries)
	require.Equal(t, cvn1.VaultedCollectionModule, config.ViewModule)

	level, err := config.Level()
	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, level)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CVN1_LISTEN_ADDRESS", ":9090")
	t.Setenv("CVN1_READ_RETRIES", "2")
	t.Setenv("CVN1_LOG_LEVEL", "debug")
	t.Setenv("CEDRA_NODE_URL", "http://node.local:8080")
	t.Setenv("CVN1_ADDRESS", "0xabc")

	config, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":9090", config.ListenAddress)
	require.Equal(t, 2, config.ReadRetries)
	require.Equal(t, "debug", config.LogLevel)
	require.Equal(t, "http://node.local:8080", config.NodeURL)
	require.Equal(t, "0xabc", config.ContractAddress)
	require.Empty(t, config.ViewModule)
}

func TestLoadViewModuleOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("CVN1_VIEW_MODULE", "vault_views")

	config, err := Load("")
	require.NoError(t, err)
	require.Equal(t, shared.DemoTestnetContractAddress, config.ContractAddress)
	require.Equal(t, "vault_views", config.ViewModule)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "demo.yaml")
	content := strings.Join([]string{
		"network: localnet",
		"contract_address: 0xfile",
		"listen_address: 0.0.0.0:8000",
		"api_key: secret",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CVN1_LISTEN_ADDRESS", "127.0.0.1:7000")

	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, shared.NetworkLocalnet, config.Network)
	require.Equal(t, "0xfile", config.ContractAddress)
	require.Equal(t, "127.0.0.1:7000", config.ListenAddress)
	require.Equal(t, "secret", config.APIKey)
	require.NotContains(t, config.String(), "secret")
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("CVN1_NETWORK", "localnet")
	_, err := Load("")
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("CVN1_LOG_LEVEL", "loud")
	_, err = Load("")
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("CVN1_NETWORK", "mainnet")
	_, err = Load("")
	require.Error(t, err)

	clearEnv(t)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
