// Package indexer maintains the ClickHouse address index by walking the chain block by block.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/clock"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/goodnatureofminers/addressflow/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultBatchSize   = 50
	defaultWorkerCount = 8
	defaultMaxRetries  = 5

	sleepDuration     = 1 * time.Second
	longSleepDuration = 30 * time.Second
)

var retryBackoff = clock.Backoff{Initial: 2 * time.Second, Max: time.Minute}

// Config tunes the indexer loop. Zero values fall back to defaults.
type Config struct {
	BatchSize     int
	Workers       int
	Confirmations uint64
	// MaxRetries bounds consecutive retries of a batch that failed on the node RPC.
	MaxRetries int
}

type IndexerService struct {
	logger            *zap.Logger
	coin              model.Coin
	network           model.Network
	source            BlockSource
	repo              IndexRepository
	metrics           IndexerMetrics
	builder           *batchBuilder
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	backoff           clock.Backoff
	maxRetries        int
	batchSize         int
	workerCount       int
	confirmations     uint64
}

func NewIndexerService(
	source BlockSource,
	repo IndexRepository,
	metrics IndexerMetrics,
	cfg Config,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
) (*IndexerService, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if repo == nil {
		return nil, errors.New("index repository is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkerCount
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	return &IndexerService{
		logger: logger.With(
			zap.String("coin", string(coin)),
			zap.String("network", string(network)),
		),
		coin:              coin,
		network:           network,
		source:            source,
		repo:              repo,
		metrics:           metrics,
		builder:           &batchBuilder{repo: repo, coin: coin, network: network},
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		backoff:           retryBackoff,
		maxRetries:        cfg.MaxRetries,
		batchSize:         cfg.BatchSize,
		workerCount:       cfg.Workers,
		confirmations:     cfg.Confirmations,
	}, nil
}

// Run indexes blocks until ctx is canceled or a batch fails for good. Node RPC failures are
// retried with backoff up to the configured limit, anything else stops the loop.
func (s *IndexerService) Run(ctx context.Context) error {
	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := s.run(ctx)
		if err == nil {
			failures = 0
			continue
		}
		if ctx.Err() != nil || !errors.Is(err, chain.ErrRPCFailure) || failures >= s.maxRetries {
			return err
		}
		failures++
		delay := s.backoff.Delay(failures)
		s.logger.Warn("batch failed on node rpc; retrying",
			zap.Int("attempt", failures),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (s *IndexerService) run(ctx context.Context) error {
	heights, err := s.nextHeights(ctx)
	if err != nil {
		s.logger.Error("resolve next heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("index is at tip; sleeping", zap.Duration("sleep", s.longSleepDuration))
		return s.sleep(ctx, s.longSleepDuration)
	}

	s.logger.Info("processing batch",
		zap.Uint64("from", heights[0]),
		zap.Uint64("to", heights[len(heights)-1]),
	)
	started := time.Now()
	err = s.processBatch(ctx, heights)
	s.metrics.ObserveProcessBatch(err, len(heights), started)
	if err != nil {
		s.logger.Error("process batch failed", zap.Int("heights", len(heights)), zap.Error(err))
		return err
	}

	return s.sleep(ctx, s.sleepDuration)
}

// nextHeights returns the contiguous heights following the highest indexed block, bounded
// by the batch size and the confirmed tip.
func (s *IndexerService) nextHeights(ctx context.Context) ([]uint64, error) {
	latest, err := s.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest height: %w", err)
	}
	if latest < s.confirmations {
		return nil, nil
	}
	tip := latest - s.confirmations

	indexed, ok, err := s.repo.MaxIndexedHeight(ctx, s.coin, s.network)
	if err != nil {
		return nil, fmt.Errorf("max indexed height: %w", err)
	}
	var next uint64
	if ok {
		next = indexed + 1
	}
	if next > tip {
		return nil, nil
	}

	end := min(tip, next+uint64(s.batchSize)-1)
	heights := make([]uint64, 0, end-next+1)
	for h := next; h <= end; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}

func (s *IndexerService) processBatch(ctx context.Context, heights []uint64) error {
	blocks := make([]*chain.Block, len(heights))
	err := workerpool.ProcessIndexes(ctx, s.workerCount, len(heights), func(ctx context.Context, pos int) error {
		height := heights[pos]
		started := time.Now()
		block, err := s.source.FetchBlock(ctx, height)
		s.metrics.ObserveProcessHeight(err, height, started)
		if err != nil {
			return fmt.Errorf("fetch block %d: %w", height, err)
		}
		blocks[pos] = block
		return nil
	})
	if err != nil {
		return err
	}

	batch, err := s.builder.Build(ctx, blocks)
	if err != nil {
		return err
	}

	// Blocks are marked last so a partially written batch is retried from its first height.
	if err := s.repo.InsertAddressOutputs(ctx, batch.Outputs); err != nil {
		return fmt.Errorf("insert address outputs: %w", err)
	}
	if err := s.repo.InsertAddressSpends(ctx, batch.Spends); err != nil {
		return fmt.Errorf("insert address spends: %w", err)
	}
	if err := s.repo.InsertIndexedBlocks(ctx, batch.Blocks); err != nil {
		return fmt.Errorf("insert indexed blocks: %w", err)
	}

	last := heights[len(heights)-1]
	s.metrics.SetIndexedHeight(last)
	s.logger.Debug("batch indexed",
		zap.Uint64("height", last),
		zap.Int("outputs", len(batch.Outputs)),
		zap.Int("spends", len(batch.Spends)),
	)
	return nil
}
