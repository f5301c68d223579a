package demo

import (
	"math/big"
	"strings"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

// PrimaryAssetMetadata is the metadata address of the native CEDRA asset.
const PrimaryAssetMetadata = "0xa"

const unknownAssetSymbol = "FA"

// DefaultAssets returns the display metadata known without configuration.
func DefaultAssets() map[string]Asset {
	return map[string]Asset{
		PrimaryAssetMetadata: {Symbol: "CEDRA", Decimals: units.PrimaryAssetDecimals},
	}
}

func (s *Server) asset(metadata string) Asset {
	if asset, ok := s.assets[strings.ToLower(strings.TrimSpace(metadata))]; ok {
		return asset
	}
	return Asset{Symbol: unknownAssetSymbol, Decimals: units.PrimaryAssetDecimals}
}

func (s *Server) displayBalance(metadata string, amount *big.Int) (string, string) {
	asset := s.asset(metadata)
	return asset.Symbol, units.FormatBalance(amount, asset.Decimals)
}
