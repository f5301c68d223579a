// The CVN-1 SDK for Go is a client for the CVN-1 vaulted-NFT standard on the
// Cedra ledger. Every NFT minted under CVN-1 owns a vault of fungible assets
// split into a core vault, which is redeemable only by burning the NFT, and a
// rewards vault the owner may claim at any time.
//
// # Packages
//
//   - pkg/cvn1: typed view reads, entry-function payload builders and the
//     sign, submit and wait flow for every CVN-1 operation
//   - pkg/ledger: REST client for the ledger node
//   - pkg/indexer: GraphQL client for the ledger indexer
//   - pkg/account: ed25519 and secp256k1 signers with address derivation
//   - pkg/units: basis points, balances and address display helpers
//   - pkg/sweeper: royalty escrow sweeping, used by cmd/cvn1-sweeper
//   - pkg/demo: the HTTP backend behind cmd/cvn1-demo
//
// # Installation
//
//	go get github.com/cvn1-standard/cvn1-sdk-go@latest
package cvn1_sdk_go
