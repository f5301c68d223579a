package cvn1

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
)

// Positional view results are checked for both arity and element kind so a
// contract upgrade that reshapes a view fails loudly instead of decoding into
// wrong values.

func expectResults(op string, results []json.RawMessage, count int) error {
	if len(results) < count {
		return ledger.MalformedResponse(op, "expected %d result values, got %d", count, len(results))
	}
	return nil
}

func decodeBool(op string, raw json.RawMessage, position int) (bool, error) {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ledger.MalformedResponse(op, "result %d: expected bool, got %s", position, truncateRaw(trimmed))
	}
}

func decodeString(op string, raw json.RawMessage, position int) (string, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", ledger.MalformedResponse(op, "result %d: expected string, got %s", position, truncateRaw(raw))
	}
	return value, nil
}

// decodeUint accepts a JSON number or a decimal string holding a
// non-negative integer.
func decodeUint(op string, raw json.RawMessage, position int) (*big.Int, error) {
	trimmed := bytes.TrimSpace(raw)
	text := string(trimmed)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, ledger.MalformedResponse(op, "result %d: invalid string", position)
		}
	}

	if text == "" || !isDigits(text) {
		return nil, ledger.MalformedResponse(op, "result %d: expected unsigned integer, got %s", position, truncateRaw(trimmed))
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, ledger.MalformedResponse(op, "result %d: expected unsigned integer, got %s", position, truncateRaw(trimmed))
	}
	return value, nil
}

func decodeU16(op string, raw json.RawMessage, position int) (uint16, error) {
	value, err := decodeUint(op, raw, position)
	if err != nil {
		return 0, err
	}
	if !value.IsUint64() || value.Uint64() > math.MaxUint16 {
		return 0, ledger.MalformedResponse(op, "result %d: %s overflows u16", position, value.String())
	}
	return uint16(value.Uint64()), nil
}

func decodeAddressList(op string, raw json.RawMessage, position int) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, ledger.MalformedResponse(op, "result %d: expected array, got %s", position, truncateRaw(raw))
	}

	addresses := make([]string, 0, len(items))
	for _, item := range items {
		address, err := decodeString(op, item, position)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

type rawBalance struct {
	FAMetadataAddr *string         `json:"fa_metadata_addr"`
	Balance        json.RawMessage `json:"balance"`
}

func decodeBalances(op string, raw json.RawMessage, position int) ([]VaultBalance, error) {
	var items []rawBalance
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, ledger.MalformedResponse(op, "result %d: expected array of balances, got %s", position, truncateRaw(raw))
	}

	balances := make([]VaultBalance, 0, len(items))
	for index, item := range items {
		if item.FAMetadataAddr == nil {
			return nil, ledger.MalformedResponse(op, "result %d: balance %d has no fa_metadata_addr", position, index)
		}
		amount, err := decodeUint(op, item.Balance, position)
		if err != nil {
			return nil, err
		}
		balances = append(balances, VaultBalance{FAMetadataAddr: *item.FAMetadataAddr, Balance: amount})
	}
	return balances, nil
}

func isDigits(value string) bool {
	for _, character := range value {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}

func truncateRaw(raw []byte) string {
	const limit = 64
	if len(raw) == 0 {
		return "nothing"
	}
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
