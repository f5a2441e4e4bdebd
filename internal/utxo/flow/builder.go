package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/goodnatureofminers/addressflow/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultTransactionWorkers = 8
	defaultInputWorkers       = 4
)

// Config tunes a Builder.
type Config struct {
	// TransactionWorkers bounds the transactions of one address classified at a time.
	TransactionWorkers int
	// InputWorkers bounds the prior transactions resolved at a time for one transaction.
	InputWorkers int
	// DisableCache fetches every referenced transaction again instead of memoizing it per run.
	DisableCache bool
}

// Builder assembles address flow histories from a history lister and a transaction fetcher.
type Builder struct {
	lister  HistoryLister
	fetcher TransactionFetcher
	metrics BuilderMetrics
	cfg     Config
	logger  *zap.Logger
}

// NewBuilder validates dependencies and applies worker defaults.
func NewBuilder(
	lister HistoryLister,
	fetcher TransactionFetcher,
	metrics BuilderMetrics,
	cfg Config,
	logger *zap.Logger,
) (*Builder, error) {
	if lister == nil {
		return nil, errors.New("history lister is required")
	}
	if fetcher == nil {
		return nil, errors.New("transaction fetcher is required")
	}
	if metrics == nil {
		return nil, errors.New("builder metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TransactionWorkers <= 0 {
		cfg.TransactionWorkers = defaultTransactionWorkers
	}
	if cfg.InputWorkers <= 0 {
		cfg.InputWorkers = defaultInputWorkers
	}
	return &Builder{
		lister:  lister,
		fetcher: fetcher,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger.Named("flowBuilder"),
	}, nil
}

// BuildAddressFlowHistory lists the history of address and classifies every transaction in it.
// The result preserves history order. The first failure aborts the build.
func (b *Builder) BuildAddressFlowHistory(ctx context.Context, address string) (model.AddressFlowHistory, error) {
	return b.build(ctx, address, b.runFetcher())
}

// BuildAddressFlowHistories builds the history of every address in order, sharing one
// transaction cache across the batch.
func (b *Builder) BuildAddressFlowHistories(ctx context.Context, addresses []string) ([]model.AddressFlowHistory, error) {
	fetcher := b.runFetcher()
	histories := make([]model.AddressFlowHistory, 0, len(addresses))
	for _, address := range addresses {
		history, err := b.build(ctx, address, fetcher)
		if err != nil {
			return nil, err
		}
		histories = append(histories, history)
	}
	return histories, nil
}

// GroupedFlows builds the histories of addresses and groups them by transaction.
func (b *Builder) GroupedFlows(ctx context.Context, addresses []string) (model.GroupedFlowTable, error) {
	histories, err := b.BuildAddressFlowHistories(ctx, addresses)
	if err != nil {
		return nil, err
	}
	table, err := GroupFlowHistories(histories)
	if err != nil {
		return nil, fmt.Errorf("group flow histories: %w", err)
	}
	return table, nil
}

func (b *Builder) runFetcher() TransactionFetcher {
	if b.cfg.DisableCache {
		return b.fetcher
	}
	return chain.NewTransactionCache(b.fetcher, b.metrics)
}

func (b *Builder) build(ctx context.Context, address string, fetcher TransactionFetcher) (history model.AddressFlowHistory, err error) {
	started := time.Now()
	var transactions int
	defer func() {
		b.metrics.ObserveBuild(err, transactions, started)
	}()
	logger := b.logger.With(zap.String("address", address))

	txids, err := b.lister.ListHistory(ctx, address)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.AddressFlowHistory{}, ctxErr
		}
		if errors.Is(err, chain.ErrLookupFailure) {
			return model.AddressFlowHistory{}, fmt.Errorf("list history for %s: %w", address, err)
		}
		return model.AddressFlowHistory{}, fmt.Errorf("%w: list history for %s: %w", chain.ErrLookupFailure, address, err)
	}
	transactions = len(txids)

	classifier := NewClassifier(fetcher, b.cfg.InputWorkers)
	entries := make([]model.TransactionFlows, len(txids))

	err = workerpool.ProcessIndexes(ctx, b.cfg.TransactionWorkers, len(txids), func(ctx context.Context, pos int) error {
		txid := txids[pos]
		tx, err := fetcher.FetchTransaction(ctx, txid)
		if err != nil {
			return fmt.Errorf("fetch transaction %s: %w", txid, err)
		}
		flows, err := classifier.Classify(ctx, tx, address)
		if err != nil {
			return fmt.Errorf("classify transaction %s: %w", txid, err)
		}
		entries[pos] = model.TransactionFlows{Transaction: tx, Flows: flows}
		logger.Debug("transaction classified", zap.String("txid", txid), zap.Int("flows", len(flows)))
		return nil
	})
	if err != nil {
		return model.AddressFlowHistory{}, fmt.Errorf("build flow history for %s: %w", address, err)
	}

	logger.Info("flow history built", zap.Int("transactions", len(entries)), zap.Duration("took", time.Since(started)))
	return model.AddressFlowHistory{Address: address, Transactions: entries}, nil
}
