package units

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ToBigInt coerces strings, integers, floats and big integers into a
// canonical *big.Int. Floats are floored before conversion so that fractional
// base units never reach a payload. Strings may be decimal or 0x-prefixed hex.
func ToBigInt(value any) (*big.Int, error) {
	switch typed := value.(type) {
	case nil:
		return nil, fmt.Errorf("cannot convert nil to big integer")
	case *big.Int:
		if typed == nil {
			return nil, fmt.Errorf("cannot convert nil to big integer")
		}
		return new(big.Int).Set(typed), nil
	case big.Int:
		return new(big.Int).Set(&typed), nil
	case string:
		return parseBigIntString(typed)
	case json.Number:
		return parseBigIntString(typed.String())
	case int:
		return big.NewInt(int64(typed)), nil
	case int8:
		return big.NewInt(int64(typed)), nil
	case int16:
		return big.NewInt(int64(typed)), nil
	case int32:
		return big.NewInt(int64(typed)), nil
	case int64:
		return big.NewInt(typed), nil
	case uint:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(typed)), nil
	case uint64:
		return new(big.Int).SetUint64(typed), nil
	case float32:
		return floatToBigInt(float64(typed))
	case float64:
		return floatToBigInt(typed)
	default:
		return nil, fmt.Errorf("unsupported numeric type %T", value)
	}
}

// MustBigInt is ToBigInt for constants known to be valid. It panics on error.
func MustBigInt(value any) *big.Int {
	result, err := ToBigInt(value)
	if err != nil {
		panic(err)
	}
	return result
}

func parseBigIntString(raw string) (*big.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("cannot convert empty string to big integer")
	}

	result := new(big.Int)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "0x") {
		if _, ok := result.SetString(lower[2:], 16); !ok {
			return nil, fmt.Errorf("invalid hex integer %q", raw)
		}
		return result, nil
	}

	if _, ok := result.SetString(trimmed, 10); ok {
		return result, nil
	}

	// Decimal strings such as "12.7" are floored like float inputs.
	parsed, _, err := big.ParseFloat(trimmed, 10, 256, big.ToNegativeInf)
	if err != nil || parsed.IsInf() {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	return floorBigFloat(parsed), nil
}

func floatToBigInt(value float64) (*big.Int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("cannot convert %v to big integer", value)
	}
	floored, _ := big.NewFloat(math.Floor(value)).Int(nil)
	return floored, nil
}

func floorBigFloat(value *big.Float) *big.Int {
	truncated, accuracy := value.Int(nil)
	if value.Sign() < 0 && accuracy != big.Exact {
		truncated.Sub(truncated, big.NewInt(1))
	}
	return truncated
}
