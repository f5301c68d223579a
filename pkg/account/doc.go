// Package account signs transactions with caller-supplied key material and
// derives the ledger address of a key.
package account
