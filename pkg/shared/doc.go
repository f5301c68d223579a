// Package shared provides common utilities used across the CVN-1 Vaulted NFT
// SDK for Go. It includes network normalization, well-known endpoints and
// contract addresses, operator environment variable loading, and private key
// parsing helpers.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations with the
// Cedra ledger.
//
// # Environment Variables
//
// Operator credentials can be loaded from environment variables or a .env
// file found in the working directory or any of its parents:
//
//	CEDRA_NETWORK       testnet (default) or localnet
//	CEDRA_NODE_URL      overrides the network's node REST endpoint
//	CEDRA_PRIVATE_KEY   hex private key, optionally AIP-80 prefixed
//	CVN1_ADDRESS        address of the deployed CVN-1 contract
//
// Network-scoped variants (TESTNET_CEDRA_PRIVATE_KEY, LOCALNET_CEDRA_PRIVATE_KEY,
// ...) take precedence over the generic names.
package shared
