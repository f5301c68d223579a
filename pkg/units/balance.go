package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// PrimaryAssetDecimals is the base-unit exponent of the ledger's native asset.
const PrimaryAssetDecimals = 8

const displayFractionDigits = 2

// FormatBalance renders a base-unit amount as "whole.fractional", keeping the
// first two fractional digits. Extra digits are truncated, never rounded.
func FormatBalance(amount *big.Int, decimals int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	if decimals <= 0 {
		return amount.String()
	}

	places := int32(displayFractionDigits)
	if decimals < displayFractionDigits {
		places = int32(decimals)
	}

	value := decimal.NewFromBigInt(amount, -int32(decimals))
	return value.Truncate(places).StringFixed(places)
}

// FormatPrimaryBalance formats an amount of the native asset.
func FormatPrimaryBalance(amount *big.Int) string {
	return FormatBalance(amount, PrimaryAssetDecimals)
}

// SumBalances adds amounts without deduplicating them. Nil entries count as zero.
func SumBalances(amounts ...*big.Int) *big.Int {
	total := new(big.Int)
	for _, amount := range amounts {
		if amount != nil {
			total.Add(total, amount)
		}
	}
	return total
}
