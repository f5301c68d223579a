package cvn1

import (
	"fmt"
	"strings"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
)

// Builders only check structure. Business ranges such as royalty caps are
// enforced by the contract.

func entryFunction(contractAddress string, module string, function string, arguments ...any) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("contract address", contractAddress); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if arguments == nil {
		arguments = []any{}
	}
	return ledger.EntryFunctionPayload{
		Type:          ledger.EntryFunctionPayloadType,
		Function:      fmt.Sprintf("%s::%s::%s", strings.TrimSpace(contractAddress), module, function),
		TypeArguments: []string{},
		Arguments:     arguments,
	}, nil
}

// BuildInitCollectionConfigPayload builds and returns the configured value.
func BuildInitCollectionConfigPayload(contractAddress string, config CollectionConfig) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("creator payout address", config.CreatorPayoutAddr); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("mint price fa", config.MintPriceFA); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	allowedAssets := []string{}
	if len(config.AllowedAssets) > 0 {
		if err := validateAddresses("allowed assets", config.AllowedAssets); err != nil {
			return ledger.EntryFunctionPayload{}, err
		}
		allowedAssets = trimmedAddresses(config.AllowedAssets)
	}

	mintPrice, err := amountArgument("mint price", config.MintPrice)
	if err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	maxSupply, err := amountArgument("max supply", config.MaxSupply)
	if err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	return entryFunction(
		contractAddress,
		VaultedCollectionModule,
		"init_collection_config",
		config.Name,
		config.Description,
		config.URI,
		bpsArgument(config.CreatorRoyaltyBps),
		bpsArgument(config.VaultRoyaltyBps),
		bpsArgument(config.MintVaultBps),
		mintPrice,
		strings.TrimSpace(config.MintPriceFA),
		allowedAssets,
		strings.TrimSpace(config.CreatorPayoutAddr),
		maxSupply,
	)
}

// BuildCreatorMintPayload builds and returns the configured value.
func BuildCreatorMintPayload(contractAddress string, params CreatorMintParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("collection address", params.Collection); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("recipient address", params.To); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	return entryFunction(
		contractAddress,
		VaultedCollectionModule,
		"creator_mint",
		strings.TrimSpace(params.Collection),
		strings.TrimSpace(params.To),
		params.Name,
		params.Description,
		params.URI,
		params.IsRedeemable,
	)
}

// BuildPublicMintPayload builds and returns the configured value.
func BuildPublicMintPayload(contractAddress string, params PublicMintParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("collection address", params.Collection); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	return entryFunction(
		contractAddress,
		VaultedCollectionModule,
		"public_mint",
		strings.TrimSpace(params.Collection),
		params.Name,
		params.Description,
		params.URI,
	)
}

// BuildDepositPayload deposits into the core vault unless params.Vault
// names the rewards vault.
func BuildDepositPayload(contractAddress string, params DepositParams) (ledger.EntryFunctionPayload, error) {
	function := "deposit_to_core_vault"
	switch params.Vault {
	case "", SubVaultCore:
	case SubVaultRewards:
		function = "deposit_to_rewards_vault"
	default:
		return ledger.EntryFunctionPayload{}, fmt.Errorf("unknown sub-vault %q", params.Vault)
	}

	if err := ValidateAddress("nft address", params.NFT); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("fa metadata address", params.FAMetadata); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if params.Amount == nil {
		return ledger.EntryFunctionPayload{}, fmt.Errorf("deposit amount is required")
	}
	amount, err := amountArgument("deposit amount", params.Amount)
	if err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	return entryFunction(
		contractAddress,
		VaultOpsModule,
		function,
		strings.TrimSpace(params.NFT),
		strings.TrimSpace(params.FAMetadata),
		amount,
	)
}

// BuildClaimRewardsPayload builds and returns the configured value.
func BuildClaimRewardsPayload(contractAddress string, params ClaimParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("nft address", params.NFT); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("fa metadata address", params.FAMetadata); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	return entryFunction(
		contractAddress,
		VaultOpsModule,
		"claim_rewards",
		strings.TrimSpace(params.NFT),
		strings.TrimSpace(params.FAMetadata),
	)
}

// BuildBurnAndRedeemPayload builds and returns the configured value.
func BuildBurnAndRedeemPayload(contractAddress string, params BurnParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("nft address", params.NFT); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	return entryFunction(contractAddress, VaultOpsModule, "burn_and_redeem", strings.TrimSpace(params.NFT))
}

// BuildSettleSalePayload builds the marketplace settlement that routes the
// vault royalty into the NFT.
func BuildSettleSalePayload(contractAddress string, params SaleParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("nft address", params.NFT); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("buyer address", params.Buyer); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("fa metadata address", params.FAMetadata); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if params.SalePrice == nil {
		return ledger.EntryFunctionPayload{}, fmt.Errorf("sale price is required")
	}
	price, err := amountArgument("sale price", params.SalePrice)
	if err != nil {
		return ledger.EntryFunctionPayload{}, err
	}

	return entryFunction(
		contractAddress,
		MarketplaceModule,
		"settle_sale_with_vault_royalty",
		strings.TrimSpace(params.NFT),
		strings.TrimSpace(params.Buyer),
		strings.TrimSpace(params.FAMetadata),
		price,
	)
}

// BuildSweepRoyaltyPayload builds and returns the configured value.
func BuildSweepRoyaltyPayload(contractAddress string, params SweepParams) (ledger.EntryFunctionPayload, error) {
	if err := ValidateAddress("nft address", params.NFT); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("fa metadata address", params.FAMetadata); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	return entryFunction(
		contractAddress,
		VaultOpsModule,
		"sweep_royalty_to_core_vault",
		strings.TrimSpace(params.NFT),
		strings.TrimSpace(params.FAMetadata),
	)
}

// BuildSweepRoyaltyManyPayload sweeps several escrows in one transaction.
func BuildSweepRoyaltyManyPayload(contractAddress string, params SweepManyParams) (ledger.EntryFunctionPayload, error) {
	if err := validateAddresses("nft addresses", params.NFTs); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	if err := ValidateAddress("fa metadata address", params.FAMetadata); err != nil {
		return ledger.EntryFunctionPayload{}, err
	}
	return entryFunction(
		contractAddress,
		VaultOpsModule,
		"sweep_royalty_to_core_vault_many",
		trimmedAddresses(params.NFTs),
		strings.TrimSpace(params.FAMetadata),
	)
}
