// Package bootstrap wires the node client, listers and flow builder shared by the binaries.
package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	HistorySourceAddrIndex  = "addrindex"
	HistorySourceClickhouse = "clickhouse"
)

// ChainConfig selects the ledger.
type ChainConfig struct {
	Coin    model.Coin    `long:"coin" env:"ADDRESSFLOW_COIN" description:"coin name" default:"BTC"`
	Network model.Network `long:"network" env:"ADDRESSFLOW_NETWORK" description:"network name" default:"testnet"`
}

// RPCConfig holds the node connection settings.
type RPCConfig struct {
	URL      string        `long:"rpc-url" env:"BITCOIND_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:18332"`
	User     string        `long:"rpc-user" env:"BITCOIND_RPC_USER" description:"Bitcoin RPC username"`
	Password string        `long:"rpc-password" env:"BITCOIND_RPC_PASSWORD" description:"Bitcoin RPC password"`
	Timeout  time.Duration `long:"rpc-timeout" env:"BITCOIND_RPC_TIMEOUT" description:"deadline for a single RPC call" default:"30s"`
	RPS      int           `long:"rpc-rps" env:"BITCOIND_RPC_RPS" description:"max RPC requests per second, 0 disables the limit" default:"0"`
}

// FlowConfig holds the flow builder settings.
type FlowConfig struct {
	HistorySource      string `long:"history-source" env:"ADDRESSFLOW_HISTORY_SOURCE" description:"address history source" choice:"addrindex" choice:"clickhouse" default:"addrindex"`
	ClickhouseDSN      string `long:"clickhouse-dsn" env:"ADDRESSFLOW_CLICKHOUSE_DSN" description:"ClickHouse DSN for the clickhouse history source"`
	TransactionWorkers int    `long:"transaction-workers" env:"ADDRESSFLOW_TRANSACTION_WORKERS" description:"transactions classified concurrently per address" default:"8"`
	InputWorkers       int    `long:"input-workers" env:"ADDRESSFLOW_INPUT_WORKERS" description:"prior transactions resolved concurrently per transaction" default:"4"`
	DisableCache       bool   `long:"disable-cache" env:"ADDRESSFLOW_DISABLE_CACHE" description:"fetch every referenced transaction again instead of memoizing it"`
}

// LoadDotEnv loads .env from the working directory when present.
func LoadDotEnv(logger *zap.Logger) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no .env file found, using process environment")
			return
		}
		logger.Warn("failed to load .env", zap.Error(err))
	}
}
