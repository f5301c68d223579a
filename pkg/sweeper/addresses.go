package sweeper

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

const maxAddressHexLength = 64

// ParseAddress normalizes a hex account address to its long form: lower
// case, 0x prefix, left-padded to 64 hex digits. "0x1" and "0x01" parse to
// the same address.
func ParseAddress(raw string) (string, error) {
	digits := strings.TrimPrefix(units.NormalizeAddress(raw), "0x")
	if digits == "" || len(digits) > maxAddressHexLength {
		return "", fmt.Errorf("invalid address %q", raw)
	}
	for _, character := range digits {
		if !strings.ContainsRune("0123456789abcdef", character) {
			return "", fmt.Errorf("invalid address %q", raw)
		}
	}
	return "0x" + strings.Repeat("0", maxAddressHexLength-len(digits)) + digits, nil
}

// ReadAddressesFile reads one address per line. Blank lines and lines
// starting with # are skipped.
func ReadAddressesFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer file.Close()

	addresses := []string{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		address, err := ParseAddress(line)
		if err != nil {
			return nil, fmt.Errorf("parse address at %s:%d: %w", path, lineNumber, err)
		}
		addresses = append(addresses, address)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return addresses, nil
}

// MergeAddresses normalizes, deduplicates and sorts address lists. Hex
// addresses are compared in their long form; anything else is only
// lower-cased.
func MergeAddresses(lists ...[]string) []string {
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, address := range list {
			normalized, err := ParseAddress(address)
			if err != nil {
				normalized = units.NormalizeAddress(address)
			}
			if normalized == "" {
				continue
			}
			seen[normalized] = struct{}{}
		}
	}

	merged := make([]string, 0, len(seen))
	for address := range seen {
		merged = append(merged, address)
	}
	sort.Strings(merged)
	return merged
}
