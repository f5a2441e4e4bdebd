package bootstrap

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/addressflow/internal/metrics"
	observedrpc "github.com/goodnatureofminers/addressflow/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/addressflow/internal/utxo/bitcoin"
)

// Node bundles the observed node client with the converters built on it.
type Node struct {
	client    *rpcclient.Client
	RPC       *observedrpc.ObservedClient
	Converter bitcoin.TransactionConverter
	cfg       RPCConfig
}

// NewNode connects to the node in HTTP POST mode and wraps the client with metrics and rate limiting.
func NewNode(rpcCfg RPCConfig, chainCfg ChainConfig) (*Node, error) {
	client, err := NewRPCClient(rpcCfg.URL, rpcCfg.User, rpcCfg.Password)
	if err != nil {
		return nil, fmt.Errorf("init rpc client: %w", err)
	}
	decoder, err := bitcoin.NewScriptDecoder(chainCfg.Network)
	if err != nil {
		client.Shutdown()
		return nil, fmt.Errorf("init script decoder: %w", err)
	}
	return &Node{
		client:    client,
		RPC:       observedrpc.NewObservedClient(client, metrics.NewRPCClient(chainCfg.Coin, chainCfg.Network), rpcCfg.RPS),
		Converter: bitcoin.NewTransactionConverter(decoder, chainCfg.Network),
		cfg:       rpcCfg,
	}, nil
}

// Fetcher returns a transaction fetcher bounded by the configured per-call timeout.
func (n *Node) Fetcher() *bitcoin.NodeFetcher {
	return bitcoin.NewNodeFetcher(n.RPC, n.Converter, n.cfg.Timeout)
}

// BlockSource returns a block source bounded by the configured per-call timeout.
func (n *Node) BlockSource() *bitcoin.BlockSource {
	return bitcoin.NewBlockSource(n.RPC, n.Converter, n.cfg.Timeout)
}

func (n *Node) Close() {
	n.client.Shutdown()
	n.client.WaitForShutdown()
}

// NewRPCClient builds a btcd client for a bitcoind-compatible HTTP endpoint.
func NewRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host + parsed.Path,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   parsed.Scheme == "http",
	}
	return rpcclient.New(cfg, nil)
}
