// Package indexer queries the ledger's GraphQL indexer.
package indexer
