package demo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
)

const shutdownTimeout = 10 * time.Second

// VaultReader is the subset of *cvn1.Client the demo API reads through.
type VaultReader interface {
	VaultExists(ctx context.Context, nft string) (bool, error)
	GetVaultBalances(ctx context.Context, nft string) ([]cvn1.VaultBalance, error)
	GetVaultConfig(ctx context.Context, address string) (cvn1.VaultConfig, error)
}

type Asset struct {
	Symbol   string
	Decimals int
}

type Config struct {
	Reader          VaultReader
	ContractAddress string
	// Assets maps fungible-asset metadata addresses to display metadata.
	Assets map[string]Asset
	Logger log.FieldLogger
}

type Server struct {
	reader          VaultReader
	contractAddress string
	assets          map[string]Asset
	logger          log.FieldLogger
	handler         http.Handler
}

// NewServer creates a new Server.
func NewServer(config Config) (*Server, error) {
	if config.Reader == nil {
		return nil, fmt.Errorf("vault reader is required")
	}
	if err := cvn1.ValidateAddress("contract address", config.ContractAddress); err != nil {
		return nil, err
	}

	assets := DefaultAssets()
	for address, asset := range config.Assets {
		assets[strings.ToLower(strings.TrimSpace(address))] = asset
	}
	logger := config.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	server := &Server{
		reader:          config.Reader,
		contractAddress: strings.TrimSpace(config.ContractAddress),
		assets:          assets,
		logger:          logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", server.handleHealth)
	mux.HandleFunc("POST /api/mint", server.handleMint)
	mux.HandleFunc("GET /api/vault/{nft}", server.handleVault)
	mux.HandleFunc("GET /api/config/{creator}", server.handleConfig)
	server.handler = withRequestID(withAccessLog(logger, withCORS(mux)))

	return server, nil
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on address until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	httpServer := &http.Server{
		Addr:              address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.WithFields(log.Fields{
			"address":  address,
			"contract": s.contractAddress,
		}).Info("demo backend listening")
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down demo backend: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
