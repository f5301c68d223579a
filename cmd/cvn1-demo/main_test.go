package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cvn1-standard/cvn1-sdk-go/internal/config"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

func TestNewServerServesHealth(t *testing.T) {
	node := httptest.NewServer(http.NotFoundHandler())
	defer node.Close()

	server, err := newServer(&config.Config{
		Network:         "testnet",
		NodeURL:         node.URL,
		ContractAddress: "0xc0ffee",
		ListenAddress:   "127.0.0.1:0",
		LogLevel:        "info",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "0xc0ffee", body["contract"])
}

func TestNewServerRejectsUnknownNetwork(t *testing.T) {
	_, err := newServer(&config.Config{Network: "mainnet-ish", ContractAddress: "0x1"})
	require.Error(t, err)
}

func TestDefaultDemoDeploymentUsesVaultedCollectionViews(t *testing.T) {
	for _, name := range []string{
		"CVN1_NETWORK", "CEDRA_NETWORK", "CVN1_CONTRACT_ADDRESS", "CVN1_ADDRESS",
		"CVN1_VIEW_MODULE", "CVN1_INDEXER_URL", "CEDRA_INDEXER_URL", "CEDRA_NODE_URL",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	var (
		mu        sync.Mutex
		functions []string
	)
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Function string `json:"function"`
		}
		_ = json.NewDecoder(r.Body).Decode(&request)
		mu.Lock()
		functions = append(functions, request.Function)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[false]`))
	}))
	defer node.Close()
	t.Setenv("CVN1_NODE_URL", node.URL)

	cfg, err := config.Load("")
	require.NoError(t, err)
	server, err := newServer(cfg)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/vault/0x1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{shared.DemoTestnetContractAddress + "::vaulted_collection::vault_exists"}, functions)
}
