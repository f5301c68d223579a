// Package demo serves the HTTP API backing the CVN-1 demo frontend.
//
// Vault and config routes read the ledger through a cvn1 read client. The
// mint route is simulated and never submits a transaction.
package demo
