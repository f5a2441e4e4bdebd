package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/goodnatureofminers/addressflow/internal/transport"
	"github.com/goodnatureofminers/addressflow/internal/utxo/bootstrap"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const (
	formatJSON = "json"
	formatDump = "dump"
)

type config struct {
	bootstrap.ChainConfig
	bootstrap.RPCConfig
	bootstrap.FlowConfig

	Addresses []string `short:"a" long:"address" description:"address to build flows for, repeatable" required:"true"`
	Format    string   `long:"format" env:"ADDRESSFLOW_FORMAT" description:"output format" choice:"json" choice:"dump" default:"json"`
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

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Fatal("address flows failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) error {
	builder, err := bootstrap.NewFlowBuilder(cfg.ChainConfig, cfg.RPCConfig, cfg.FlowConfig, logger)
	if err != nil {
		return err
	}
	defer builder.Close()

	table, err := builder.GroupedFlows(ctx, cfg.Addresses)
	if err != nil {
		return err
	}
	return render(out, cfg.Format, table)
}

func render(out io.Writer, format string, table model.GroupedFlowTable) error {
	switch format {
	case formatDump:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for _, key := range table.Keys() {
			cfg.Fdump(out, key, table[key])
		}
		return nil
	case formatJSON, "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(transport.NewGroupedFlowsResponse(table))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
