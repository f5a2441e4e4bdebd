package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/addressflow/internal/metrics"
	"github.com/goodnatureofminers/addressflow/internal/utxo/bootstrap"
	"github.com/goodnatureofminers/addressflow/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/addressflow/internal/utxo/service/indexer"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	bootstrap.ChainConfig
	bootstrap.RPCConfig

	ClickhouseDSN string `long:"clickhouse-dsn" env:"ADDRESSFLOW_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	BatchSize     int    `long:"batch-size" env:"ADDRESS_INDEXER_BATCH_SIZE" description:"blocks indexed per batch" default:"50"`
	Workers       int    `long:"workers" env:"ADDRESS_INDEXER_WORKERS" description:"blocks fetched concurrently" default:"8"`
	Confirmations uint64 `long:"confirmations" env:"ADDRESS_INDEXER_CONFIRMATIONS" description:"blocks to stay behind the node tip" default:"0"`
	MaxRetries    int    `long:"max-retries" env:"ADDRESS_INDEXER_MAX_RETRIES" description:"consecutive retries of a batch failing on the node RPC" default:"5"`
	MetricsAddr   string `long:"metrics-addr" env:"ADDRESS_INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	bootstrap.LoadDotEnv(logger)
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("address indexer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	bootstrap.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	node, err := bootstrap.NewNode(cfg.RPCConfig, cfg.ChainConfig)
	if err != nil {
		return err
	}
	defer node.Close()

	svc, err := indexer.NewIndexerService(
		node.BlockSource(),
		repo,
		metrics.NewAddressIndexer(cfg.Coin, cfg.Network),
		indexer.Config{
			BatchSize:     cfg.BatchSize,
			Workers:       cfg.Workers,
			Confirmations: cfg.Confirmations,
			MaxRetries:    cfg.MaxRetries,
		},
		cfg.Coin,
		cfg.Network,
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}
