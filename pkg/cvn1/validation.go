package cvn1

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

// ValidateAddress returns an error when value cannot be used as an address
// argument.
func ValidateAddress(label string, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", label)
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return fmt.Errorf("%s must not contain whitespace", label)
	}
	return nil
}

func validateAddresses(label string, values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("%s requires at least one address", label)
	}
	for index, value := range values {
		if err := ValidateAddress(fmt.Sprintf("%s[%d]", label, index), value); err != nil {
			return err
		}
	}
	return nil
}

// amountArgument converts an amount into the decimal string form used for
// u64 and u128 arguments. Nil means zero.
func amountArgument(label string, value any) (string, error) {
	if value == nil {
		return "0", nil
	}
	amount, err := units.ToBigInt(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", label, err)
	}
	if amount.Sign() < 0 {
		return "", fmt.Errorf("%s must not be negative", label)
	}
	return amount.String(), nil
}

func bpsArgument(value uint16) string {
	return new(big.Int).SetUint64(uint64(value)).String()
}

func trimmedAddresses(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	return trimmed
}
