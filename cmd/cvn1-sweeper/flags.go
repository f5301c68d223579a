package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/sweeper"
)

const (
	networkFlagName      = "network"
	nodeURLFlagName      = "node-url"
	privateKeyFlagName   = "private-key"
	cvn1AddressFlagName  = "cvn1-address"
	timeoutFlagName      = "timeout"
	maxGasAmountFlagName = "max-gas-amount"
	gasUnitPriceFlagName = "gas-unit-price"
	readRetriesFlagName  = "read-retries"
	logLevelFlagName     = "log-level"
	nftFlagName          = "nft"
	nftsFileFlagName     = "nfts-file"
	faMetadataFlagName   = "fa-metadata"
	forceFlagName        = "force"
	intervalFlagName     = "interval"
	batchSizeFlagName    = "batch-size"
)

var (
	networkFlag = &cli.StringFlag{
		Name:    networkFlagName,
		Usage:   "ledger network (testnet, localnet)",
		Value:   "testnet",
		EnvVars: []string{"CEDRA_NETWORK", "NETWORK"},
	}
	nodeURLFlag = &cli.StringFlag{
		Name:    nodeURLFlagName,
		Usage:   "ledger node REST URL, defaults to the network's public node",
		EnvVars: []string{"CEDRA_NODE_URL", "NODE_URL"},
	}
	privateKeyFlag = &cli.StringFlag{
		Name:     privateKeyFlagName,
		Usage:    "hex private key of the gas account, optionally AIP-80 prefixed",
		EnvVars:  []string{"CEDRA_PRIVATE_KEY", "PRIVATE_KEY"},
		Required: true,
	}
	cvn1AddressFlag = &cli.StringFlag{
		Name:    cvn1AddressFlagName,
		Usage:   "address of the CVN-1 contract",
		EnvVars: []string{"CVN1_ADDRESS", "CVN1_CONTRACT_ADDRESS"},
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  timeoutFlagName,
		Usage: "transaction expiration and finality timeout",
		Value: 30 * time.Second,
	}
	maxGasAmountFlag = &cli.Uint64Flag{
		Name:  maxGasAmountFlagName,
		Usage: "maximum gas units per sweep transaction",
		Value: sweeper.DefaultMaxGasAmount,
	}
	gasUnitPriceFlag = &cli.Uint64Flag{
		Name:  gasUnitPriceFlagName,
		Usage: "gas unit price in octas",
		Value: sweeper.DefaultGasUnitPrice,
	}
	readRetriesFlag = &cli.IntFlag{
		Name:  readRetriesFlagName,
		Usage: "retries for escrow reads that fail as unreachable",
		Value: 0,
	}
	logLevelFlag = &cli.StringFlag{
		Name:    logLevelFlagName,
		Usage:   "log level (panic, fatal, error, warn, info, debug, trace)",
		Value:   "info",
		EnvVars: []string{"CVN1_LOG_LEVEL"},
	}
	faMetadataFlag = &cli.StringFlag{
		Name:     faMetadataFlagName,
		Usage:    "metadata address of the fungible asset to sweep",
		Required: true,
	}
	singleNFTFlag = &cli.StringFlag{
		Name:     nftFlagName,
		Usage:    "NFT object address",
		Required: true,
	}
	forceFlag = &cli.BoolFlag{
		Name:  forceFlagName,
		Usage: "submit the sweep even if the escrow reports a zero balance",
	}
	nftsFlag = &cli.StringSliceFlag{
		Name:  nftFlagName,
		Usage: "NFT object address to watch (repeatable)",
	}
	nftsFileFlag = &cli.StringFlag{
		Name:  nftsFileFlagName,
		Usage: "file with one NFT address per line, # comments allowed",
	}
	intervalFlag = &cli.DurationFlag{
		Name:  intervalFlagName,
		Usage: "time between escrow checks",
		Value: sweeper.DefaultInterval,
	}
	batchSizeFlag = &cli.IntFlag{
		Name:  batchSizeFlagName,
		Usage: "maximum NFTs swept per transaction",
		Value: sweeper.DefaultBatchSize,
	}
)
