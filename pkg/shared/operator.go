package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	KeySchemeEd25519   = "ed25519"
	KeySchemeSecp256k1 = "secp256k1"
)

type OperatorConfig struct {
	PrivateKey      string
	Network         string
	NodeURL         string
	ContractAddress string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv performs the requested operation.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("CEDRA_NETWORK", "NETWORK")
	normalizedNetwork, err := NormalizeNetwork(network)
	if err != nil {
		return OperatorConfig{}, err
	}

	privateKey := firstNonEmptyEnv("CEDRA_PRIVATE_KEY", "PRIVATE_KEY")
	nodeURL := firstNonEmptyEnv("CEDRA_NODE_URL", "NODE_URL")

	scope := strings.ToUpper(normalizedNetwork)
	if scopedKey := firstNonEmptyEnv(scope+"_CEDRA_PRIVATE_KEY", scope+"_PRIVATE_KEY"); scopedKey != "" {
		privateKey = scopedKey
	}
	if scopedURL := firstNonEmptyEnv(scope + "_CEDRA_NODE_URL"); scopedURL != "" {
		nodeURL = scopedURL
	}

	contractAddress := firstNonEmptyEnv("CVN1_ADDRESS", "CVN1_CONTRACT_ADDRESS")
	if contractAddress == "" {
		contractAddress, _ = DefaultContractAddress(normalizedNetwork)
	}

	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("CEDRA_PRIVATE_KEY is required")
	}
	if contractAddress == "" {
		return OperatorConfig{}, fmt.Errorf("CVN1_ADDRESS is required on %s", normalizedNetwork)
	}

	return OperatorConfig{
		PrivateKey:      privateKey,
		Network:         normalizedNetwork,
		NodeURL:         nodeURL,
		ContractAddress: contractAddress,
	}, nil
}

// LoadDotEnv loads the given files, then the nearest .env file above the
// working directory. The directory search runs once per process. Variables
// that are already set are never overwritten.
func LoadDotEnv(paths ...string) {
	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			loadDotEnvFile(path)
		}
	}
	loadDotEnvIfPresent()
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		current, err := os.Getwd()
		if err != nil {
			return
		}

		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				loadDotEnvFile(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func loadDotEnvFile(path string) int {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	loaded := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loaded++
		}
	}

	return loaded
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return key, value[1 : len(value)-1], true
		}
	}
	if comment := strings.Index(value, " #"); comment >= 0 {
		value = strings.TrimSpace(value[:comment])
	}

	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// SplitPrivateKeyScheme separates an AIP-80 scheme prefix such as
// "ed25519-priv-" from the key material. Keys without a prefix are ed25519.
func SplitPrivateKeyScheme(raw string) (string, string) {
	candidate := strings.TrimSpace(raw)
	lower := strings.ToLower(candidate)

	for _, scheme := range []string{KeySchemeEd25519, KeySchemeSecp256k1} {
		prefix := scheme + "-priv-"
		if strings.HasPrefix(lower, prefix) {
			return scheme, candidate[len(prefix):]
		}
	}

	return KeySchemeEd25519, candidate
}

// ParsePrivateKey parses the provided input value as an ed25519 private key.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	scheme, candidate := SplitPrivateKeyScheme(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}
	if scheme != KeySchemeEd25519 {
		return hedera.PrivateKey{}, fmt.Errorf("expected an ed25519 private key, got %s", scheme)
	}

	candidate = strings.TrimPrefix(strings.TrimPrefix(candidate, "0x"), "0X")
	key, err := hedera.PrivateKeyFromStringEd25519(candidate)
	if err != nil {
		return hedera.PrivateKey{}, fmt.Errorf("failed to parse ed25519 private key: %w", err)
	}

	return key, nil
}
