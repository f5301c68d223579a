package shared

import (
	"fmt"
	"strings"
)

const (
	NetworkTestnet  = "testnet"
	NetworkLocalnet = "localnet"
)

// Contract addresses published for the CVN-1 testnet deployments. The SDK and
// the demo frontend were released against different deployments; neither is
// guaranteed to be current.
const (
	SDKTestnetContractAddress  = "0x87e87b2f6ca01a0a02d68e18305f700435fdb76e445db9d24c84a121f2d5cd2c"
	DemoTestnetContractAddress = "0x921213f0f52998b002b7f2c4fcf2b7042dab9f1a5f44a36158ed6424afc25bb7"
)

type Endpoints struct {
	NodeURL    string
	IndexerURL string
}

var networkEndpoints = map[string]Endpoints{
	NetworkTestnet: {
		NodeURL:    "https://testnet.cedra.dev",
		IndexerURL: "https://testnet.cedra.dev/v1/graphql",
	},
	NetworkLocalnet: {
		NodeURL:    "http://127.0.0.1:8080",
		IndexerURL: "http://127.0.0.1:8090/v1/graphql",
	},
}

// NormalizeNetwork performs the requested operation.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkTestnet, NetworkLocalnet:
		return normalized, nil
	case "local":
		return NetworkLocalnet, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// ResolveEndpoints returns the default node and indexer endpoints of a network.
func ResolveEndpoints(network string) (Endpoints, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return Endpoints{}, err
	}
	return networkEndpoints[normalized], nil
}

// DefaultContractAddress returns the CVN-1 deployment used when no contract
// address is configured. Only testnet has a published deployment.
func DefaultContractAddress(network string) (string, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return "", err
	}
	if normalized == NetworkTestnet {
		return SDKTestnetContractAddress, nil
	}
	return "", fmt.Errorf("no published CVN-1 deployment on %s", normalized)
}
