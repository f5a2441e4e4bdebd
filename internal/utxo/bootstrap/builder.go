package bootstrap

import (
	"fmt"

	"github.com/goodnatureofminers/addressflow/internal/metrics"
	"github.com/goodnatureofminers/addressflow/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/addressflow/internal/utxo/flow"
	"github.com/goodnatureofminers/addressflow/internal/utxo/repository/clickhouse"
	"go.uber.org/zap"
)

// FlowBuilder owns a flow.Builder and the connections behind it.
type FlowBuilder struct {
	*flow.Builder
	node *Node
	repo *clickhouse.Repository
}

// NewFlowBuilder wires the node fetcher and the configured history lister into a flow.Builder.
func NewFlowBuilder(chainCfg ChainConfig, rpcCfg RPCConfig, flowCfg FlowConfig, logger *zap.Logger) (*FlowBuilder, error) {
	node, err := NewNode(rpcCfg, chainCfg)
	if err != nil {
		return nil, err
	}
	fb := &FlowBuilder{node: node}

	var lister flow.HistoryLister
	switch flowCfg.HistorySource {
	case HistorySourceAddrIndex, "":
		lister, err = bitcoin.NewAddressIndexLister(node.RPC, chainCfg.Network, rpcCfg.Timeout)
		if err != nil {
			fb.Close()
			return nil, fmt.Errorf("init addrindex lister: %w", err)
		}
	case HistorySourceClickhouse:
		if flowCfg.ClickhouseDSN == "" {
			fb.Close()
			return nil, fmt.Errorf("clickhouse history source requires a DSN")
		}
		fb.repo, err = clickhouse.NewRepository(flowCfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			fb.Close()
			return nil, fmt.Errorf("init repository: %w", err)
		}
		lister = clickhouse.NewAddressHistoryLister(fb.repo, chainCfg.Coin, chainCfg.Network)
	default:
		fb.Close()
		return nil, fmt.Errorf("unknown history source %q", flowCfg.HistorySource)
	}

	fb.Builder, err = flow.NewBuilder(
		lister,
		node.Fetcher(),
		metrics.NewFlowBuilder(chainCfg.Coin, chainCfg.Network),
		flow.Config{
			TransactionWorkers: flowCfg.TransactionWorkers,
			InputWorkers:       flowCfg.InputWorkers,
			DisableCache:       flowCfg.DisableCache,
		},
		logger,
	)
	if err != nil {
		fb.Close()
		return nil, err
	}
	return fb, nil
}

// Close releases the node client and the ClickHouse connection.
func (b *FlowBuilder) Close() {
	if b.repo != nil {
		_ = b.repo.Close()
	}
	b.node.Close()
}
