package units

import (
	"strings"
	"unicode/utf8"
)

const (
	addressDisplayThreshold = 12
	addressHeadLength       = 6
	addressTailLength       = 4
)

// FormatAddress truncates an address for display. Addresses of up to 12
// characters are returned unchanged; longer ones render as the first six
// characters, "...", and the last four. Lengths count runes, not bytes.
func FormatAddress(address string) string {
	if utf8.RuneCountInString(address) <= addressDisplayThreshold {
		return address
	}
	runes := []rune(address)
	return string(runes[:addressHeadLength]) + "..." + string(runes[len(runes)-addressTailLength:])
}

// NormalizeAddress lower-cases an address and guarantees a 0x prefix.
func NormalizeAddress(address string) string {
	trimmed := strings.ToLower(strings.TrimSpace(address))
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "0x") {
		trimmed = "0x" + trimmed
	}
	return trimmed
}
