package demo

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

// Mint strategies and the vault amount each one seeds, in base units.
var mintStrategies = map[string]uint64{
	"premium-art":    100_000_000,
	"pfp-collection": 25_000_000,
	"piggy-bank":     0,
}

type healthResponse struct {
	Status   string `json:"status"`
	Contract string `json:"contract"`
}

type mintRequest struct {
	StrategyID   string `json:"strategy_id"`
	BuyerAddress string `json:"buyer_address"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URI          string `json:"uri"`
}

type mintResponse struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"tx_hash"`
	NFTAddress  string `json:"nft_address"`
	VaultAmount uint64 `json:"vault_amount"`
}

type balanceResponse struct {
	FAMetadataAddr string `json:"fa_metadata_addr"`
	Balance        string `json:"balance"`
	Symbol         string `json:"symbol"`
	Display        string `json:"display"`
}

type vaultResponse struct {
	Exists   bool              `json:"exists"`
	Balances []balanceResponse `json:"balances"`
}

type configResponse struct {
	CreatorRoyaltyBps     uint16   `json:"creator_royalty_bps"`
	VaultRoyaltyBps       uint16   `json:"vault_royalty_bps"`
	CreatorRoyaltyPercent float64  `json:"creator_royalty_percent"`
	VaultRoyaltyPercent   float64  `json:"vault_royalty_percent"`
	AllowedAssets         []string `json:"allowed_assets"`
	CreatorPayoutAddr     string   `json:"creator_payout_addr"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Contract: s.contractAddress})
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var request mintRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid mint request"})
		return
	}

	vaultAmount, ok := mintStrategies[strings.TrimSpace(request.StrategyID)]
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown strategy"})
		return
	}

	response := mintResponse{
		Success:     true,
		TxHash:      simulatedAddress(),
		NFTAddress:  simulatedAddress(),
		VaultAmount: vaultAmount,
	}
	s.requestLogger(r).WithFields(log.Fields{
		"strategy":     request.StrategyID,
		"buyer":        units.FormatAddress(request.BuyerAddress),
		"vault_amount": vaultAmount,
	}).Info("simulated mint")
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleVault(w http.ResponseWriter, r *http.Request) {
	nft := strings.TrimSpace(r.PathValue("nft"))
	logger := s.requestLogger(r).WithField("nft", nft)

	exists, err := s.reader.VaultExists(r.Context(), nft)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		logger.WithError(err).Error("failed to query vault")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if !exists {
		writeJSON(w, http.StatusOK, vaultResponse{Exists: false, Balances: []balanceResponse{}})
		return
	}

	balances, err := s.reader.GetVaultBalances(r.Context(), nft)
	if err != nil {
		logger.WithError(err).Error("failed to query vault balances")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	response := vaultResponse{Exists: true, Balances: make([]balanceResponse, 0, len(balances))}
	for _, balance := range balances {
		symbol, display := s.displayBalance(balance.FAMetadataAddr, balance.Balance)
		amount := "0"
		if balance.Balance != nil {
			amount = balance.Balance.String()
		}
		response.Balances = append(response.Balances, balanceResponse{
			FAMetadataAddr: balance.FAMetadataAddr,
			Balance:        amount,
			Symbol:         symbol,
			Display:        display,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	creator := strings.TrimSpace(r.PathValue("creator"))
	logger := s.requestLogger(r).WithField("creator", creator)

	config, err := s.reader.GetVaultConfig(r.Context(), creator)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, ledger.ErrRejected):
		// View aborts for unknown creators surface as rejected requests.
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "collection config not found"})
		return
	default:
		logger.WithError(err).Error("failed to query config")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	allowedAssets := config.AllowedAssets
	if allowedAssets == nil {
		allowedAssets = []string{}
	}
	writeJSON(w, http.StatusOK, configResponse{
		CreatorRoyaltyBps:     config.CreatorRoyaltyBps,
		VaultRoyaltyBps:       config.VaultRoyaltyBps,
		CreatorRoyaltyPercent: units.BpsToPercent(config.CreatorRoyaltyBps),
		VaultRoyaltyPercent:   units.BpsToPercent(config.VaultRoyaltyBps),
		AllowedAssets:         allowedAssets,
		CreatorPayoutAddr:     config.CreatorPayoutAddr,
	})
}

func (s *Server) requestLogger(r *http.Request) log.FieldLogger {
	return s.logger.WithField("request_id", requestIDFrom(r.Context()))
}

// simulatedAddress returns a random 32-byte hex value shaped like a ledger
// address or transaction hash.
func simulatedAddress() string {
	first := uuid.New()
	second := uuid.New()
	return "0x" + hex.EncodeToString(first[:]) + hex.EncodeToString(second[:])
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
