package cvn1

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/indexer"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

// CollectionListLimit bounds ListCollections.
const CollectionListLimit = 50

type Client struct {
	ledgerClient      *ledger.Client
	indexerClient     *indexer.Client
	contractAddress   string
	viewModule        string
	readRetries       int
	readRetryInterval time.Duration
}

// NewClient creates a new Client.
func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	contractAddress := strings.TrimSpace(config.ContractAddress)
	if contractAddress == "" {
		contractAddress, err = shared.DefaultContractAddress(network)
		if err != nil {
			return nil, fmt.Errorf("contract address is required: %w", err)
		}
	}
	if err := ValidateAddress("contract address", contractAddress); err != nil {
		return nil, err
	}

	viewModule := strings.TrimSpace(config.ViewModule)
	if viewModule == "" {
		viewModule = DefaultViewModule
	}
	if config.ReadRetries < 0 {
		return nil, fmt.Errorf("read retries must not be negative")
	}
	retryInterval := config.ReadRetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultReadRetryInterval
	}

	ledgerClient, err := ledger.NewClient(ledger.Config{
		Network:    network,
		BaseURL:    config.NodeURL,
		HTTPClient: config.HTTPClient,
		APIKey:     config.APIKey,
	})
	if err != nil {
		return nil, err
	}

	indexerClient, err := indexer.NewClient(indexer.Config{
		Network:    network,
		URL:        config.IndexerURL,
		HTTPClient: config.HTTPClient,
		APIKey:     config.APIKey,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		ledgerClient:      ledgerClient,
		indexerClient:     indexerClient,
		contractAddress:   contractAddress,
		viewModule:        viewModule,
		readRetries:       config.ReadRetries,
		readRetryInterval: retryInterval,
	}, nil
}

// ContractAddress returns the requested value.
func (c *Client) ContractAddress() string {
	return c.contractAddress
}

// LedgerClient returns the configured node client.
func (c *Client) LedgerClient() *ledger.Client {
	return c.ledgerClient
}

// IndexerClient returns the configured indexer client.
func (c *Client) IndexerClient() *indexer.Client {
	return c.indexerClient
}

// FunctionID returns the fully qualified identifier of a contract function.
func (c *Client) FunctionID(module string, function string) string {
	return fmt.Sprintf("%s::%s::%s", c.contractAddress, module, function)
}

// CollectionConfigType returns the Move type of the collection-config
// resource published by this contract.
func (c *Client) CollectionConfigType() string {
	return c.FunctionID(VaultedCollectionModule, CollectionConfigResource)
}

func (c *Client) view(ctx context.Context, function string, arguments ...any) ([]json.RawMessage, error) {
	request := ledger.ViewRequest{
		Function:      c.FunctionID(c.viewModule, function),
		TypeArguments: []string{},
		Arguments:     arguments,
	}

	var results []json.RawMessage
	err := c.withReadRetry(ctx, func() error {
		var err error
		results, err = c.ledgerClient.View(ctx, request)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) viewBool(ctx context.Context, function string, arguments ...any) (bool, error) {
	results, err := c.view(ctx, function, arguments...)
	if err != nil {
		return false, err
	}
	if err := expectResults(function, results, 1); err != nil {
		return false, err
	}
	return decodeBool(function, results[0], 0)
}

func (c *Client) viewBalances(ctx context.Context, function string, nft string) ([]VaultBalance, error) {
	if err := ValidateAddress("nft address", nft); err != nil {
		return nil, err
	}
	results, err := c.view(ctx, function, strings.TrimSpace(nft))
	if err != nil {
		return nil, err
	}
	if err := expectResults(function, results, 1); err != nil {
		return nil, err
	}
	return decodeBalances(function, results[0], 0)
}

// VaultExists reports whether a vault is attached to the NFT object.
func (c *Client) VaultExists(ctx context.Context, nft string) (bool, error) {
	if err := ValidateAddress("nft address", nft); err != nil {
		return false, err
	}
	return c.viewBool(ctx, "vault_exists", strings.TrimSpace(nft))
}

// GetVaultBalances returns the combined balances of both sub-vaults.
func (c *Client) GetVaultBalances(ctx context.Context, nft string) ([]VaultBalance, error) {
	return c.viewBalances(ctx, "get_vault_balances", nft)
}

// GetCoreVaultBalances returns the requested value.
func (c *Client) GetCoreVaultBalances(ctx context.Context, nft string) ([]VaultBalance, error) {
	return c.viewBalances(ctx, "get_core_vault_balances", nft)
}

// GetRewardsVaultBalances returns the requested value.
func (c *Client) GetRewardsVaultBalances(ctx context.Context, nft string) ([]VaultBalance, error) {
	return c.viewBalances(ctx, "get_rewards_vault_balances", nft)
}

// GetDualVaultBalances reads both sub-vaults concurrently. The first failure
// cancels the other read and is returned.
func (c *Client) GetDualVaultBalances(ctx context.Context, nft string) (DualVaultBalances, error) {
	if err := ValidateAddress("nft address", nft); err != nil {
		return DualVaultBalances{}, err
	}

	var result DualVaultBalances
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		balances, err := c.GetCoreVaultBalances(groupCtx, nft)
		result.Core = balances
		return err
	})
	group.Go(func() error {
		balances, err := c.GetRewardsVaultBalances(groupCtx, nft)
		result.Rewards = balances
		return err
	})
	if err := group.Wait(); err != nil {
		return DualVaultBalances{}, err
	}
	return result, nil
}

// GetVaultConfig returns the collection configuration registered for a
// creator or collection address. Deployments that predate mint pricing
// return only the first four values; the mint fields stay zero then.
func (c *Client) GetVaultConfig(ctx context.Context, address string) (VaultConfig, error) {
	const op = "get_vault_config"
	if err := ValidateAddress("creator address", address); err != nil {
		return VaultConfig{}, err
	}

	results, err := c.view(ctx, op, strings.TrimSpace(address))
	if err != nil {
		return VaultConfig{}, err
	}
	return decodeVaultConfig(op, results)
}

const (
	vaultConfigBaseValues = 4
	vaultConfigMintValues = 7
)

// decodeVaultConfig accepts the four base values, optionally followed by the
// three mint values. Partial mint tuples are malformed.
func decodeVaultConfig(op string, results []json.RawMessage) (VaultConfig, error) {
	if err := expectResults(op, results, vaultConfigBaseValues); err != nil {
		return VaultConfig{}, err
	}
	if len(results) > vaultConfigBaseValues && len(results) < vaultConfigMintValues {
		return VaultConfig{}, ledger.MalformedResponse(op, "expected %d or at least %d result values, got %d", vaultConfigBaseValues, vaultConfigMintValues, len(results))
	}

	var config VaultConfig
	var err error
	if config.CreatorRoyaltyBps, err = decodeU16(op, results[0], 0); err != nil {
		return VaultConfig{}, err
	}
	if config.VaultRoyaltyBps, err = decodeU16(op, results[1], 1); err != nil {
		return VaultConfig{}, err
	}
	if config.AllowedAssets, err = decodeAddressList(op, results[2], 2); err != nil {
		return VaultConfig{}, err
	}
	if config.CreatorPayoutAddr, err = decodeString(op, results[3], 3); err != nil {
		return VaultConfig{}, err
	}

	if len(results) == vaultConfigBaseValues {
		return config, nil
	}
	if config.MintVaultBps, err = decodeU16(op, results[4], 4); err != nil {
		return VaultConfig{}, err
	}
	if config.MintPrice, err = decodeUint(op, results[5], 5); err != nil {
		return VaultConfig{}, err
	}
	if config.MintPriceFA, err = decodeString(op, results[6], 6); err != nil {
		return VaultConfig{}, err
	}
	return config, nil
}

// GetVaultInfo returns the requested value.
func (c *Client) GetVaultInfo(ctx context.Context, nft string) (VaultInfo, error) {
	const op = "get_vault_info"
	if err := ValidateAddress("nft address", nft); err != nil {
		return VaultInfo{}, err
	}

	results, err := c.view(ctx, op, strings.TrimSpace(nft))
	if err != nil {
		return VaultInfo{}, err
	}
	if err := expectResults(op, results, 3); err != nil {
		return VaultInfo{}, err
	}

	var info VaultInfo
	if info.IsRedeemable, err = decodeBool(op, results[0], 0); err != nil {
		return VaultInfo{}, err
	}
	if info.CreatorAddr, err = decodeString(op, results[1], 1); err != nil {
		return VaultInfo{}, err
	}
	if info.LastSaleCompliant, err = decodeBool(op, results[2], 2); err != nil {
		return VaultInfo{}, err
	}
	return info, nil
}

// GetCollectionSupply returns the requested value.
func (c *Client) GetCollectionSupply(ctx context.Context, collection string) (CollectionSupply, error) {
	const op = "get_collection_supply"
	if err := ValidateAddress("collection address", collection); err != nil {
		return CollectionSupply{}, err
	}

	results, err := c.view(ctx, op, strings.TrimSpace(collection))
	if err != nil {
		return CollectionSupply{}, err
	}
	if err := expectResults(op, results, 2); err != nil {
		return CollectionSupply{}, err
	}

	var supply CollectionSupply
	if supply.Minted, err = decodeUint(op, results[0], 0); err != nil {
		return CollectionSupply{}, err
	}
	if supply.MaxSupply, err = decodeUint(op, results[1], 1); err != nil {
		return CollectionSupply{}, err
	}
	return supply, nil
}

// CanMint reports whether minter may public-mint from collection.
func (c *Client) CanMint(ctx context.Context, collection string, minter string) (bool, error) {
	if err := ValidateAddress("collection address", collection); err != nil {
		return false, err
	}
	if err := ValidateAddress("minter address", minter); err != nil {
		return false, err
	}
	return c.viewBool(ctx, "can_mint", strings.TrimSpace(collection), strings.TrimSpace(minter))
}

// LastSaleUsedVaultRoyalty reports whether the NFT's last sale settled
// through the vault-royalty path.
func (c *Client) LastSaleUsedVaultRoyalty(ctx context.Context, nft string) (bool, error) {
	if err := ValidateAddress("nft address", nft); err != nil {
		return false, err
	}
	return c.viewBool(ctx, "last_sale_used_vault_royalty", strings.TrimSpace(nft))
}

// GetRoyaltyEscrowBalance returns the unswept royalty held for the NFT in
// one fungible asset.
func (c *Client) GetRoyaltyEscrowBalance(ctx context.Context, nft string, faMetadata string) (*big.Int, error) {
	const op = "get_royalty_escrow_balance"
	if err := ValidateAddress("nft address", nft); err != nil {
		return nil, err
	}
	if err := ValidateAddress("fa metadata address", faMetadata); err != nil {
		return nil, err
	}

	results, err := c.view(ctx, op, strings.TrimSpace(nft), strings.TrimSpace(faMetadata))
	if err != nil {
		return nil, err
	}
	if err := expectResults(op, results, 1); err != nil {
		return nil, err
	}
	return decodeUint(op, results[0], 0)
}

// FindCollectionAddressFromTx returns the address of the collection config
// written by a committed init_collection_config transaction.
func (c *Client) FindCollectionAddressFromTx(ctx context.Context, hash string) (string, error) {
	return c.FindResourceAddressInTx(ctx, hash, c.CollectionConfigType())
}

// FindResourceAddressInTx returns the address of the first resource of
// resourceType written by a transaction.
func (c *Client) FindResourceAddressInTx(ctx context.Context, hash string, resourceType string) (string, error) {
	if strings.TrimSpace(hash) == "" {
		return "", fmt.Errorf("transaction hash is required")
	}
	if strings.TrimSpace(resourceType) == "" {
		return "", fmt.Errorf("resource type is required")
	}

	var transaction ledger.Transaction
	err := c.withReadRetry(ctx, func() error {
		var err error
		transaction, err = c.ledgerClient.GetTransactionByHash(ctx, hash)
		return err
	})
	if err != nil {
		return "", err
	}

	if address, ok := findWrittenResource(transaction.Changes, resourceType); ok {
		return address, nil
	}
	return "", ledger.NotFound("find resource in transaction", fmt.Sprintf("no %s written by %s", resourceType, hash))
}

func findWrittenResource(changes []ledger.WriteSetChange, resourceType string) (string, bool) {
	for _, change := range changes {
		if change.Type != ledger.WriteResourceChangeType || change.Data == nil {
			continue
		}
		if change.Data.Type == resourceType && strings.TrimSpace(change.Address) != "" {
			return change.Address, true
		}
	}
	return "", false
}

// GetCollectionConfigResource reads the collection-config resource stored
// at a collection address.
func (c *Client) GetCollectionConfigResource(ctx context.Context, address string) (ledger.MoveResource, error) {
	if err := ValidateAddress("collection address", address); err != nil {
		return ledger.MoveResource{}, err
	}

	var resource ledger.MoveResource
	err := c.withReadRetry(ctx, func() error {
		var err error
		resource, err = c.ledgerClient.GetAccountResource(ctx, strings.TrimSpace(address), c.CollectionConfigType())
		return err
	})
	return resource, err
}

// ListCollections returns up to CollectionListLimit collection addresses
// known to the indexer, in ascending address order.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var addresses []string
	err := c.withReadRetry(ctx, func() error {
		var err error
		addresses, err = c.indexerClient.ResourceAddresses(ctx, c.CollectionConfigType(), CollectionListLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addresses, nil
}
