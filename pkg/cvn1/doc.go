// Package cvn1 reads and writes CVN-1 vaulted NFTs.
//
// Client wraps the contract's view functions with typed, strictly decoded
// results and submits entry-function transactions signed by a caller-supplied
// account.Signer. Payload builders are pure and can be used without a client.
package cvn1
