// Package ledger provides a REST client for Cedra ledger nodes. It covers
// the calls the CVN-1 SDK depends on: view function evaluation, account and
// account-resource reads, transaction lookup, the encode/sign/submit protocol
// and waiting for finality.
//
// Failures are reported as *Error values carrying an ErrorKind, so callers
// can tell a confirmed absence (ErrNotFound) apart from an unreachable node
// (ErrUnreachable), a contract-side rejection (ErrRejected) or a response the
// client could not decode (ErrMalformedResponse):
//
//	values, err := client.View(ctx, ledger.ViewRequest{Function: "0x1::coin::balance"})
//	if errors.Is(err, ledger.ErrUnreachable) {
//		// retry later
//	}
//
// This package is part of the CVN-1 Vaulted NFT SDK for Go.
package ledger
