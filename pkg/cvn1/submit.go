package cvn1

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/account"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
)

func (o SubmitOptions) withDefaults() SubmitOptions {
	if o.MaxGasAmount == 0 {
		o.MaxGasAmount = DefaultMaxGasAmount
	}
	if o.GasUnitPrice == 0 {
		o.GasUnitPrice = DefaultGasUnitPrice
	}
	if o.ExpirationTimeout <= 0 {
		o.ExpirationTimeout = DefaultExpirationTimeout
	}
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = o.ExpirationTimeout
	}
	return o
}

// Submit signs payload with signer, submits it and waits for finality.
// Every step is attempted once. A transaction that commits but aborts is
// returned with Success=false and a nil error.
func (c *Client) Submit(
	ctx context.Context,
	signer account.Signer,
	payload ledger.EntryFunctionPayload,
	options SubmitOptions,
) (TxResult, error) {
	if signer == nil {
		return TxResult{}, fmt.Errorf("signer is required")
	}
	options = options.withDefaults()
	sender := signer.Address()

	accountInfo, err := c.ledgerClient.GetAccount(ctx, sender)
	if err != nil {
		return TxResult{}, fmt.Errorf("failed to read sender account: %w", err)
	}
	if _, err := accountInfo.Sequence(); err != nil {
		return TxResult{}, ledger.MalformedResponse("get account", "%v", err)
	}

	unsigned := ledger.UnsignedTransaction{
		Sender:                  sender,
		SequenceNumber:          accountInfo.SequenceNumber,
		MaxGasAmount:            strconv.FormatUint(options.MaxGasAmount, 10),
		GasUnitPrice:            strconv.FormatUint(options.GasUnitPrice, 10),
		ExpirationTimestampSecs: strconv.FormatInt(time.Now().Add(options.ExpirationTimeout).Unix(), 10),
		Payload:                 payload,
	}

	message, err := c.ledgerClient.EncodeSubmission(ctx, unsigned)
	if err != nil {
		return TxResult{}, fmt.Errorf("failed to encode transaction: %w", err)
	}

	signature, err := signer.Sign(message)
	if err != nil {
		return TxResult{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	pending, err := c.ledgerClient.SubmitTransaction(ctx, ledger.SignedTransaction{
		UnsignedTransaction: unsigned,
		Signature:           signature,
	})
	if err != nil {
		return TxResult{}, fmt.Errorf("failed to submit transaction: %w", err)
	}

	committed, err := c.ledgerClient.WaitForTransaction(ctx, pending.Hash, ledger.WaitOptions{
		PollInterval: options.PollInterval,
		Timeout:      options.WaitTimeout,
	})
	if err != nil {
		return TxResult{Hash: pending.Hash}, fmt.Errorf("failed to confirm transaction %s: %w", pending.Hash, err)
	}

	return txResultFrom(committed)
}

func txResultFrom(transaction ledger.Transaction) (TxResult, error) {
	gasUsed, err := transaction.GasUsedUnits()
	if err != nil {
		return TxResult{}, ledger.MalformedResponse("wait for transaction", "invalid gas_used %q", transaction.GasUsed)
	}
	version, err := transaction.VersionNumber()
	if err != nil {
		return TxResult{}, ledger.MalformedResponse("wait for transaction", "invalid version %q", transaction.Version)
	}
	return TxResult{
		Hash:     transaction.Hash,
		Success:  transaction.Success,
		GasUsed:  gasUsed,
		VMStatus: transaction.VMStatus,
		Version:  version,
	}, nil
}

func (c *Client) submitBuilt(
	ctx context.Context,
	signer account.Signer,
	options SubmitOptions,
	payload ledger.EntryFunctionPayload,
	err error,
) (TxResult, error) {
	if err != nil {
		return TxResult{}, err
	}
	return c.Submit(ctx, signer, payload, options)
}

// InitCollection creates a vaulted collection owned by signer.
func (c *Client) InitCollection(ctx context.Context, signer account.Signer, config CollectionConfig, options SubmitOptions) (TxResult, error) {
	payload, err := BuildInitCollectionConfigPayload(c.contractAddress, config)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// CreatorMint mints a vaulted NFT as the collection creator.
func (c *Client) CreatorMint(ctx context.Context, signer account.Signer, params CreatorMintParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildCreatorMintPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// PublicMint mints a vaulted NFT paying the collection's mint price.
func (c *Client) PublicMint(ctx context.Context, signer account.Signer, params PublicMintParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildPublicMintPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// Deposit performs the requested operation.
func (c *Client) Deposit(ctx context.Context, signer account.Signer, params DepositParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildDepositPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// ClaimRewards performs the requested operation.
func (c *Client) ClaimRewards(ctx context.Context, signer account.Signer, params ClaimParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildClaimRewardsPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// BurnAndRedeem performs the requested operation.
func (c *Client) BurnAndRedeem(ctx context.Context, signer account.Signer, params BurnParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildBurnAndRedeemPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// SettleSale performs the requested operation.
func (c *Client) SettleSale(ctx context.Context, signer account.Signer, params SaleParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildSettleSalePayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// SweepRoyalty performs the requested operation.
func (c *Client) SweepRoyalty(ctx context.Context, signer account.Signer, params SweepParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildSweepRoyaltyPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}

// SweepRoyaltyMany performs the requested operation.
func (c *Client) SweepRoyaltyMany(ctx context.Context, signer account.Signer, params SweepManyParams, options SubmitOptions) (TxResult, error) {
	payload, err := BuildSweepRoyaltyManyPayload(c.contractAddress, params)
	return c.submitBuilt(ctx, signer, options, payload, err)
}
