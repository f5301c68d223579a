package cvn1

import (
	"math/big"
	"net/http"
	"time"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

// Contract module names.
const (
	DefaultViewModule       = "vault_views"
	VaultedCollectionModule = "vaulted_collection"
	VaultOpsModule          = "vault_ops"
	MarketplaceModule       = "marketplace"

	CollectionConfigResource = "CollectionConfig"
)

const (
	DefaultMaxGasAmount      uint64 = 200_000
	DefaultGasUnitPrice      uint64 = 100
	DefaultExpirationTimeout        = 30 * time.Second
)

type SubVault string

const (
	SubVaultCore    SubVault = "core"
	SubVaultRewards SubVault = "rewards"
)

type ClientConfig struct {
	Network         string
	NodeURL         string
	IndexerURL      string
	APIKey          string
	HTTPClient      *http.Client
	ContractAddress string
	ViewModule      string
	// ReadRetries bounds retries of view, resource and indexer reads that
	// fail as unreachable. Writes are never retried.
	ReadRetries       int
	ReadRetryInterval time.Duration
}

type VaultBalance struct {
	FAMetadataAddr string   `json:"fa_metadata_addr"`
	Balance        *big.Int `json:"balance"`
}

// TotalBalance sums every balance without merging duplicate assets.
func TotalBalance(balances []VaultBalance) *big.Int {
	amounts := make([]*big.Int, 0, len(balances))
	for _, balance := range balances {
		amounts = append(amounts, balance.Balance)
	}
	return units.SumBalances(amounts...)
}

type VaultConfig struct {
	CreatorRoyaltyBps uint16   `json:"creator_royalty_bps"`
	VaultRoyaltyBps   uint16   `json:"vault_royalty_bps"`
	AllowedAssets     []string `json:"allowed_assets"`
	CreatorPayoutAddr string   `json:"creator_payout_addr"`
	MintVaultBps      uint16   `json:"mint_vault_bps"`
	MintPrice         *big.Int `json:"mint_price"`
	MintPriceFA       string   `json:"mint_price_fa"`
}

type VaultInfo struct {
	IsRedeemable      bool   `json:"is_redeemable"`
	CreatorAddr       string `json:"creator_addr"`
	LastSaleCompliant bool   `json:"last_sale_compliant"`
}

type CollectionSupply struct {
	Minted    *big.Int `json:"minted"`
	MaxSupply *big.Int `json:"max_supply"`
}

// Unlimited reports whether the collection has no supply cap.
func (s CollectionSupply) Unlimited() bool {
	return s.MaxSupply == nil || s.MaxSupply.Sign() == 0
}

// Remaining returns the number of mints left, or nil when unlimited.
func (s CollectionSupply) Remaining() *big.Int {
	if s.Unlimited() {
		return nil
	}
	minted := s.Minted
	if minted == nil {
		minted = new(big.Int)
	}
	remaining := new(big.Int).Sub(s.MaxSupply, minted)
	if remaining.Sign() < 0 {
		return new(big.Int)
	}
	return remaining
}

type DualVaultBalances struct {
	Core    []VaultBalance `json:"core"`
	Rewards []VaultBalance `json:"rewards"`
}

type TxResult struct {
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	GasUsed  uint64 `json:"gas_used"`
	VMStatus string `json:"vm_status"`
	Version  uint64 `json:"version"`
}

type SubmitOptions struct {
	MaxGasAmount      uint64
	GasUnitPrice      uint64
	ExpirationTimeout time.Duration
	WaitTimeout       time.Duration
	PollInterval      time.Duration
}

// CollectionConfig holds the creation parameters of a vaulted collection.
// Amounts accept any value units.ToBigInt understands.
type CollectionConfig struct {
	Name              string
	Description       string
	URI               string
	CreatorRoyaltyBps uint16
	VaultRoyaltyBps   uint16
	MintVaultBps      uint16
	MintPrice         any
	MintPriceFA       string
	AllowedAssets     []string
	CreatorPayoutAddr string
	// MaxSupply of zero means unlimited.
	MaxSupply any
}

type CreatorMintParams struct {
	Collection   string
	To           string
	Name         string
	Description  string
	URI          string
	IsRedeemable bool
}

type PublicMintParams struct {
	Collection  string
	Name        string
	Description string
	URI         string
}

type DepositParams struct {
	NFT        string
	FAMetadata string
	Amount     any
	Vault      SubVault
}

type ClaimParams struct {
	NFT        string
	FAMetadata string
}

type BurnParams struct {
	NFT string
}

type SaleParams struct {
	NFT        string
	Buyer      string
	FAMetadata string
	SalePrice  any
}

type SweepParams struct {
	NFT        string
	FAMetadata string
}

type SweepManyParams struct {
	NFTs       []string
	FAMetadata string
}
