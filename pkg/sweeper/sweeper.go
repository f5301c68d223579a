package sweeper

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/account"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/units"
)

const (
	DefaultInterval     = 5 * time.Second
	DefaultBatchSize    = 20
	DefaultMaxGasAmount = 5_000
	DefaultGasUnitPrice = 100
)

// VaultClient is the subset of *cvn1.Client the sweeper needs.
type VaultClient interface {
	GetRoyaltyEscrowBalance(ctx context.Context, nft string, faMetadata string) (*big.Int, error)
	SweepRoyalty(ctx context.Context, signer account.Signer, params cvn1.SweepParams, options cvn1.SubmitOptions) (cvn1.TxResult, error)
	SweepRoyaltyMany(ctx context.Context, signer account.Signer, params cvn1.SweepManyParams, options cvn1.SubmitOptions) (cvn1.TxResult, error)
}

type Config struct {
	Client        VaultClient
	Signer        account.Signer
	FAMetadata    string
	NFTs          []string
	BatchSize     int
	Interval      time.Duration
	SubmitOptions cvn1.SubmitOptions
	Logger        log.FieldLogger
}

type Sweeper struct {
	client     VaultClient
	signer     account.Signer
	faMetadata string
	nfts       []string
	batchSize  int
	interval   time.Duration
	options    cvn1.SubmitOptions
	logger     log.FieldLogger
}

type SweepReport struct {
	NFT           string
	EscrowBalance *big.Int
	Swept         bool
	Result        cvn1.TxResult
}

type BatchReport struct {
	NFTs         []string
	TotalBalance *big.Int
	Result       cvn1.TxResult
	Err          error
}

type CycleReport struct {
	Checked    int
	ReadErrors int
	Due        int
	Batches    []BatchReport
}

// Failed returns the number of batches that could not be swept.
func (r CycleReport) Failed() int {
	failed := 0
	for _, batch := range r.Batches {
		if batch.Err != nil || !batch.Result.Success {
			failed++
		}
	}
	return failed
}

// New creates a new Sweeper.
func New(config Config) (*Sweeper, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("vault client is required")
	}
	if config.Signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	if err := cvn1.ValidateAddress("fa metadata address", config.FAMetadata); err != nil {
		return nil, err
	}

	batchSize := config.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	options := config.SubmitOptions
	if options.MaxGasAmount == 0 {
		options.MaxGasAmount = DefaultMaxGasAmount
	}
	if options.GasUnitPrice == 0 {
		options.GasUnitPrice = DefaultGasUnitPrice
	}
	logger := config.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &Sweeper{
		client:     config.Client,
		signer:     config.Signer,
		faMetadata: strings.TrimSpace(config.FAMetadata),
		nfts:       MergeAddresses(config.NFTs),
		batchSize:  batchSize,
		interval:   interval,
		options:    options,
		logger:     logger.WithField("fa_metadata", strings.TrimSpace(config.FAMetadata)),
	}, nil
}

// NFTs returns the deduplicated watch list.
func (s *Sweeper) NFTs() []string {
	return append([]string(nil), s.nfts...)
}

// SweepOnce sweeps one NFT's escrow. An unreadable escrow counts as empty,
// so only force submits in that case.
func (s *Sweeper) SweepOnce(ctx context.Context, nft string, force bool) (SweepReport, error) {
	if err := cvn1.ValidateAddress("nft address", nft); err != nil {
		return SweepReport{}, err
	}
	nft = strings.TrimSpace(nft)
	logger := s.logger.WithField("nft", nft)

	balance, err := s.client.GetRoyaltyEscrowBalance(ctx, nft, s.faMetadata)
	if err != nil {
		logger.WithError(err).Warn("escrow balance check failed")
		balance = new(big.Int)
	}

	report := SweepReport{NFT: nft, EscrowBalance: balance}
	if balance.Sign() == 0 && !force {
		logger.Debug("escrow empty, nothing to sweep")
		return report, nil
	}

	result, err := s.client.SweepRoyalty(ctx, s.signer, cvn1.SweepParams{NFT: nft, FAMetadata: s.faMetadata}, s.options)
	if err != nil {
		return report, fmt.Errorf("failed to sweep %s: %w", nft, err)
	}
	report.Result = result
	report.Swept = result.Success

	fields := log.Fields{
		"escrow_balance": balance.String(),
		"tx_hash":        result.Hash,
		"gas_used":       result.GasUsed,
	}
	if !result.Success {
		logger.WithFields(fields).WithField("vm_status", result.VMStatus).Error("sweep transaction aborted")
		return report, fmt.Errorf("sweep of %s aborted: %s", nft, result.VMStatus)
	}
	logger.WithFields(fields).Info("swept royalty escrow")
	return report, nil
}

type dueNFT struct {
	address string
	balance *big.Int
}

// RunCycle checks every watched NFT and sweeps those with a non-zero escrow
// in batches. Read and batch failures are logged and do not stop the cycle.
func (s *Sweeper) RunCycle(ctx context.Context) CycleReport {
	report := CycleReport{}
	due := make([]dueNFT, 0, len(s.nfts))

	for _, nft := range s.nfts {
		if ctx.Err() != nil {
			return report
		}
		report.Checked++

		balance, err := s.client.GetRoyaltyEscrowBalance(ctx, nft, s.faMetadata)
		if err != nil {
			report.ReadErrors++
			s.logger.WithField("nft", nft).WithError(err).Warn("escrow balance check failed")
			continue
		}
		if balance != nil && balance.Sign() > 0 {
			due = append(due, dueNFT{address: nft, balance: balance})
		}
	}

	report.Due = len(due)
	for start := 0; start < len(due); start += s.batchSize {
		if ctx.Err() != nil {
			break
		}
		end := start + s.batchSize
		if end > len(due) {
			end = len(due)
		}
		report.Batches = append(report.Batches, s.sweepBatch(ctx, due[start:end]))
	}
	return report
}

func (s *Sweeper) sweepBatch(ctx context.Context, chunk []dueNFT) BatchReport {
	addresses := make([]string, 0, len(chunk))
	balances := make([]*big.Int, 0, len(chunk))
	for _, item := range chunk {
		addresses = append(addresses, item.address)
		balances = append(balances, item.balance)
	}
	batch := BatchReport{NFTs: addresses, TotalBalance: units.SumBalances(balances...)}

	logger := s.logger.WithFields(log.Fields{
		"nfts":          len(addresses),
		"total_balance": batch.TotalBalance.String(),
	})

	result, err := s.client.SweepRoyaltyMany(ctx, s.signer, cvn1.SweepManyParams{NFTs: addresses, FAMetadata: s.faMetadata}, s.options)
	batch.Result = result
	batch.Err = err
	switch {
	case err != nil:
		logger.WithError(err).Error("batch sweep failed")
	case !result.Success:
		logger.WithFields(log.Fields{"tx_hash": result.Hash, "vm_status": result.VMStatus}).Error("batch sweep aborted")
	default:
		logger.WithField("tx_hash", result.Hash).Info("batch swept")
	}
	return batch
}

// Watch runs RunCycle every interval until ctx is done. A cycle that is
// still running when the next one is due delays it instead of overlapping.
func (s *Sweeper) Watch(ctx context.Context) error {
	if len(s.nfts) == 0 {
		return fmt.Errorf("watch requires at least one nft")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(s.interval).SingletonMode().Do(func() {
		report := s.RunCycle(ctx)
		s.logger.WithFields(log.Fields{
			"checked":     report.Checked,
			"read_errors": report.ReadErrors,
			"due":         report.Due,
			"batches":     len(report.Batches),
			"failed":      report.Failed(),
		}).Debug("sweep cycle finished")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweep cycle: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"nfts":     len(s.nfts),
		"interval": s.interval.String(),
	}).Info("watching royalty escrows")

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
