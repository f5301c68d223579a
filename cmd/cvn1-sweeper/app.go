package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/account"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/sweeper"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cvn1-sweeper"
	app.Usage = "sweeps CVN-1 royalty escrows into NFT core vaults"
	app.Version = Version
	app.Flags = []cli.Flag{
		networkFlag,
		nodeURLFlag,
		privateKeyFlag,
		cvn1AddressFlag,
		timeoutFlag,
		maxGasAmountFlag,
		gasUnitPriceFlag,
		readRetriesFlag,
		logLevelFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		level, err := log.ParseLevel(ctx.String(logLevelFlagName))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		log.SetLevel(level)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return nil
	}
	app.Commands = []*cli.Command{&sweepOnceCommand, &watchCommand}
	return app
}

var sweepOnceCommand = cli.Command{
	Name:  "sweep-once",
	Usage: "sweep a single NFT's royalty escrow",
	Flags: []cli.Flag{singleNFTFlag, faMetadataFlag, forceFlag},
	Action: func(ctx *cli.Context) error {
		service, err := newSweeper(ctx, nil)
		if err != nil {
			return err
		}

		runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		report, err := service.SweepOnce(runCtx, ctx.String(nftFlagName), ctx.Bool(forceFlagName))
		if err != nil {
			return err
		}
		if !report.Swept {
			fmt.Printf("nothing to sweep for %s\n", report.NFT)
			return nil
		}
		fmt.Printf("swept nft=%s escrow_balance=%s tx=%s\n", report.NFT, report.EscrowBalance, report.Result.Hash)
		return nil
	},
}

var watchCommand = cli.Command{
	Name:  "watch",
	Usage: "poll royalty escrows and sweep non-zero balances in batches",
	Flags: []cli.Flag{nftsFlag, nftsFileFlag, faMetadataFlag, intervalFlag, batchSizeFlag},
	Action: func(ctx *cli.Context) error {
		nfts, err := watchList(ctx.StringSlice(nftFlagName), ctx.String(nftsFileFlagName))
		if err != nil {
			return err
		}

		service, err := newSweeper(ctx, nfts)
		if err != nil {
			return err
		}

		runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return service.Watch(runCtx)
	},
}

func watchList(flagged []string, file string) ([]string, error) {
	nfts := make([]string, 0, len(flagged))
	for _, raw := range flagged {
		address, err := sweeper.ParseAddress(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", nftFlagName, err)
		}
		nfts = append(nfts, address)
	}
	if strings.TrimSpace(file) != "" {
		fromFile, err := sweeper.ReadAddressesFile(file)
		if err != nil {
			return nil, fmt.Errorf("read --%s: %w", nftsFileFlagName, err)
		}
		nfts = append(nfts, fromFile...)
	}

	merged := sweeper.MergeAddresses(nfts)
	if len(merged) == 0 {
		return nil, fmt.Errorf("watch mode requires --%s and/or --%s", nftFlagName, nftsFileFlagName)
	}
	return merged, nil
}

func newSweeper(ctx *cli.Context, nfts []string) (*sweeper.Sweeper, error) {
	signer, err := account.FromPrivateKey(ctx.String(privateKeyFlagName))
	if err != nil {
		return nil, fmt.Errorf("parse --%s: %w", privateKeyFlagName, err)
	}

	client, err := cvn1.NewClient(cvn1.ClientConfig{
		Network:         ctx.String(networkFlagName),
		NodeURL:         ctx.String(nodeURLFlagName),
		ContractAddress: ctx.String(cvn1AddressFlagName),
		ReadRetries:     ctx.Int(readRetriesFlagName),
	})
	if err != nil {
		return nil, err
	}

	timeout := ctx.Duration(timeoutFlagName)
	logger := log.WithFields(log.Fields{
		"gas_account": signer.Address(),
		"contract":    client.ContractAddress(),
	})

	return sweeper.New(sweeper.Config{
		Client:     client,
		Signer:     signer,
		FAMetadata: ctx.String(faMetadataFlagName),
		NFTs:       nfts,
		BatchSize:  ctx.Int(batchSizeFlagName),
		Interval:   ctx.Duration(intervalFlagName),
		SubmitOptions: cvn1.SubmitOptions{
			MaxGasAmount:      ctx.Uint64(maxGasAmountFlagName),
			GasUnitPrice:      ctx.Uint64(gasUnitPriceFlagName),
			ExpirationTimeout: timeout,
			WaitTimeout:       timeout,
		},
		Logger: logger,
	})
}
