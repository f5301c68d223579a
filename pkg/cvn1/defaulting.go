package cvn1

import (
	"context"
	"math/big"
	"sync"
)

// DefaultingReader exposes the read operations with safe defaults in place
// of errors: false, an empty slice, a zero value with ok=false, or nil.
// Failures are reported to OnError when it is set; GetDualVaultBalances may
// call it from two goroutines at once.
type DefaultingReader struct {
	client  *Client
	OnError func(op string, err error)
}

// Defaulting returns a reader that never fails.
func (c *Client) Defaulting() *DefaultingReader {
	return &DefaultingReader{client: c}
}

func (r *DefaultingReader) report(op string, err error) {
	if err != nil && r.OnError != nil {
		r.OnError(op, err)
	}
}

// VaultExists returns false on failure.
func (r *DefaultingReader) VaultExists(ctx context.Context, nft string) bool {
	exists, err := r.client.VaultExists(ctx, nft)
	r.report("vault_exists", err)
	return err == nil && exists
}

// GetVaultBalances returns an empty slice on failure.
func (r *DefaultingReader) GetVaultBalances(ctx context.Context, nft string) []VaultBalance {
	return r.balances("get_vault_balances", func() ([]VaultBalance, error) {
		return r.client.GetVaultBalances(ctx, nft)
	})
}

// GetCoreVaultBalances returns an empty slice on failure.
func (r *DefaultingReader) GetCoreVaultBalances(ctx context.Context, nft string) []VaultBalance {
	return r.balances("get_core_vault_balances", func() ([]VaultBalance, error) {
		return r.client.GetCoreVaultBalances(ctx, nft)
	})
}

// GetRewardsVaultBalances returns an empty slice on failure.
func (r *DefaultingReader) GetRewardsVaultBalances(ctx context.Context, nft string) []VaultBalance {
	return r.balances("get_rewards_vault_balances", func() ([]VaultBalance, error) {
		return r.client.GetRewardsVaultBalances(ctx, nft)
	})
}

func (r *DefaultingReader) balances(op string, read func() ([]VaultBalance, error)) []VaultBalance {
	balances, err := read()
	r.report(op, err)
	if err != nil || balances == nil {
		return []VaultBalance{}
	}
	return balances
}

// GetDualVaultBalances reads both sub-vaults concurrently; each side
// defaults independently.
func (r *DefaultingReader) GetDualVaultBalances(ctx context.Context, nft string) DualVaultBalances {
	var result DualVaultBalances
	var wait sync.WaitGroup
	wait.Add(2)
	go func() {
		defer wait.Done()
		result.Core = r.GetCoreVaultBalances(ctx, nft)
	}()
	go func() {
		defer wait.Done()
		result.Rewards = r.GetRewardsVaultBalances(ctx, nft)
	}()
	wait.Wait()
	return result
}

// GetVaultConfig returns ok=false on failure.
func (r *DefaultingReader) GetVaultConfig(ctx context.Context, address string) (VaultConfig, bool) {
	config, err := r.client.GetVaultConfig(ctx, address)
	r.report("get_vault_config", err)
	if err != nil {
		return VaultConfig{}, false
	}
	return config, true
}

// GetVaultInfo returns ok=false on failure.
func (r *DefaultingReader) GetVaultInfo(ctx context.Context, nft string) (VaultInfo, bool) {
	info, err := r.client.GetVaultInfo(ctx, nft)
	r.report("get_vault_info", err)
	if err != nil {
		return VaultInfo{}, false
	}
	return info, true
}

// GetCollectionSupply returns ok=false on failure.
func (r *DefaultingReader) GetCollectionSupply(ctx context.Context, collection string) (CollectionSupply, bool) {
	supply, err := r.client.GetCollectionSupply(ctx, collection)
	r.report("get_collection_supply", err)
	if err != nil {
		return CollectionSupply{}, false
	}
	return supply, true
}

// CanMint returns false on failure.
func (r *DefaultingReader) CanMint(ctx context.Context, collection string, minter string) bool {
	allowed, err := r.client.CanMint(ctx, collection, minter)
	r.report("can_mint", err)
	return err == nil && allowed
}

// LastSaleUsedVaultRoyalty returns false on failure.
func (r *DefaultingReader) LastSaleUsedVaultRoyalty(ctx context.Context, nft string) bool {
	compliant, err := r.client.LastSaleUsedVaultRoyalty(ctx, nft)
	r.report("last_sale_used_vault_royalty", err)
	return err == nil && compliant
}

// GetRoyaltyEscrowBalance returns zero on failure.
func (r *DefaultingReader) GetRoyaltyEscrowBalance(ctx context.Context, nft string, faMetadata string) *big.Int {
	balance, err := r.client.GetRoyaltyEscrowBalance(ctx, nft, faMetadata)
	r.report("get_royalty_escrow_balance", err)
	if err != nil {
		return new(big.Int)
	}
	return balance
}

// FindCollectionAddressFromTx returns "" when the transaction cannot be read
// or wrote no collection config.
func (r *DefaultingReader) FindCollectionAddressFromTx(ctx context.Context, hash string) string {
	address, err := r.client.FindCollectionAddressFromTx(ctx, hash)
	r.report("find_collection_address", err)
	return address
}

// ListCollections returns an empty slice on failure.
func (r *DefaultingReader) ListCollections(ctx context.Context) []string {
	addresses, err := r.client.ListCollections(ctx)
	r.report("list_collections", err)
	if err != nil || addresses == nil {
		return []string{}
	}
	return addresses
}
