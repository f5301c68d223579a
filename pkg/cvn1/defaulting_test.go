package cvn1

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestDefaultingReaderReturnsDefaultsOnFailure(t *testing.T) {
	node := newFakeNode(t)
	for _, function := range []string{
		"vault_exists",
		"get_vault_balances",
		"get_core_vault_balances",
		"get_rewards_vault_balances",
		"get_vault_config",
		"get_vault_info",
		"get_collection_supply",
		"can_mint",
		"last_sale_used_vault_royalty",
		"get_royalty_escrow_balance",
	} {
		node.fail(function, http.StatusInternalServerError)
	}
	client := newTestClient(t, node)

	var mutex sync.Mutex
	failures := map[string]int{}
	reader := client.Defaulting()
	reader.OnError = func(op string, err error) {
		mutex.Lock()
		defer mutex.Unlock()
		failures[op]++
	}

	ctx := context.Background()
	if reader.VaultExists(ctx, "0xnft") {
		t.Fatal("expected false")
	}
	if balances := reader.GetVaultBalances(ctx, "0xnft"); balances == nil || len(balances) != 0 {
		t.Fatalf("expected empty balances, got %v", balances)
	}
	dual := reader.GetDualVaultBalances(ctx, "0xnft")
	if dual.Core == nil || dual.Rewards == nil || len(dual.Core)+len(dual.Rewards) != 0 {
		t.Fatalf("expected empty dual balances, got %+v", dual)
	}
	if _, ok := reader.GetVaultConfig(ctx, "0xcreator"); ok {
		t.Fatal("expected missing config")
	}
	if _, ok := reader.GetVaultInfo(ctx, "0xnft"); ok {
		t.Fatal("expected missing info")
	}
	if _, ok := reader.GetCollectionSupply(ctx, "0xcollection"); ok {
		t.Fatal("expected missing supply")
	}
	if reader.CanMint(ctx, "0xcollection", "0xminter") {
		t.Fatal("expected false")
	}
	if reader.LastSaleUsedVaultRoyalty(ctx, "0xnft") {
		t.Fatal("expected false")
	}
	if balance := reader.GetRoyaltyEscrowBalance(ctx, "0xnft", "0xa"); balance.Sign() != 0 {
		t.Fatalf("expected zero balance, got %s", balance)
	}
	if address := reader.FindCollectionAddressFromTx(ctx, "0xhash"); address != "" {
		t.Fatalf("expected empty address, got %s", address)
	}
	if collections := reader.ListCollections(ctx); collections == nil || len(collections) != 0 {
		t.Fatalf("expected empty collections, got %v", collections)
	}

	if failures["get_core_vault_balances"] != 1 || failures["get_rewards_vault_balances"] != 1 {
		t.Fatalf("expected both dual branches to report, got %v", failures)
	}
	if len(failures) != 12 {
		t.Fatalf("expected 12 reported operations, got %v", failures)
	}
}

func TestDefaultingReaderDualBranchesDefaultIndependently(t *testing.T) {
	node := newFakeNode(t)
	node.respond("get_core_vault_balances", `[[{"fa_metadata_addr":"0xa","balance":"9"}]]`)
	node.fail("get_rewards_vault_balances", http.StatusBadGateway)
	client := newTestClient(t, node)

	dual := client.Defaulting().GetDualVaultBalances(context.Background(), "0xnft")
	if len(dual.Core) != 1 || dual.Core[0].Balance.Int64() != 9 {
		t.Fatalf("unexpected core balances: %+v", dual.Core)
	}
	if dual.Rewards == nil || len(dual.Rewards) != 0 {
		t.Fatalf("expected empty rewards, got %+v", dual.Rewards)
	}
}

func TestDefaultingReaderPassesThroughSuccess(t *testing.T) {
	node := newFakeNode(t)
	node.respond("vault_exists", `[true]`)
	node.respond("get_vault_config", `[250,250,["0xA","0xB"],"0xC"]`)
	client := newTestClient(t, node)

	reader := client.Defaulting()
	if !reader.VaultExists(context.Background(), "0xnft") {
		t.Fatal("expected true")
	}
	config, ok := reader.GetVaultConfig(context.Background(), "0xcreator")
	if !ok || config.CreatorPayoutAddr != "0xC" {
		t.Fatalf("unexpected config: %+v %v", config, ok)
	}
}

func TestDefaultingReaderDefaultsOnMalformedAndExpiredReads(t *testing.T) {
	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	cases := map[string]struct {
		body string
		ctx  context.Context
	}{
		"malformed body":   {body: `{"not":"an array"}`, ctx: context.Background()},
		"expired deadline": {body: `[true]`, ctx: expired},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			node := newFakeNode(t)
			for _, function := range []string{
				"vault_exists", "get_vault_balances", "get_core_vault_balances",
				"get_rewards_vault_balances", "get_vault_config", "get_vault_info",
				"get_collection_supply", "can_mint", "last_sale_used_vault_royalty",
				"get_royalty_escrow_balance",
			} {
				node.respond(function, tc.body)
			}
			client := newTestClient(t, node)

			var mutex sync.Mutex
			failures := map[string]int{}
			reader := client.Defaulting()
			reader.OnError = func(op string, err error) {
				mutex.Lock()
				defer mutex.Unlock()
				failures[op]++
			}

			if reader.VaultExists(tc.ctx, "0xnft") {
				t.Fatal("expected false")
			}
			if balances := reader.GetVaultBalances(tc.ctx, "0xnft"); balances == nil || len(balances) != 0 {
				t.Fatalf("expected empty balances, got %v", balances)
			}
			dual := reader.GetDualVaultBalances(tc.ctx, "0xnft")
			if dual.Core == nil || dual.Rewards == nil || len(dual.Core)+len(dual.Rewards) != 0 {
				t.Fatalf("expected empty dual balances, got %+v", dual)
			}
			if _, ok := reader.GetVaultConfig(tc.ctx, "0xcreator"); ok {
				t.Fatal("expected missing config")
			}
			if _, ok := reader.GetVaultInfo(tc.ctx, "0xnft"); ok {
				t.Fatal("expected missing info")
			}
			if _, ok := reader.GetCollectionSupply(tc.ctx, "0xcollection"); ok {
				t.Fatal("expected missing supply")
			}
			if reader.CanMint(tc.ctx, "0xcollection", "0xminter") {
				t.Fatal("expected false")
			}
			if reader.LastSaleUsedVaultRoyalty(tc.ctx, "0xnft") {
				t.Fatal("expected false")
			}
			if balance := reader.GetRoyaltyEscrowBalance(tc.ctx, "0xnft", "0xa"); balance.Sign() != 0 {
				t.Fatalf("expected zero balance, got %s", balance)
			}
			reader.FindCollectionAddressFromTx(tc.ctx, "0xhash")
			reader.ListCollections(tc.ctx)

			if len(failures) != 12 {
				t.Fatalf("expected 12 reported operations, got %v", failures)
			}
		})
	}
}
