package bitcoin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

var _ chain.TransactionFetcher = (*NodeFetcher)(nil)

// NodeFetcher implements chain.TransactionFetcher with getrawtransaction against a node.
type NodeFetcher struct {
	rpc       RPCClient
	converter TransactionConverter
	timeout   time.Duration
}

// NewNodeFetcher creates a fetcher. A zero timeout disables the per-call deadline.
func NewNodeFetcher(rpc RPCClient, converter TransactionConverter, timeout time.Duration) *NodeFetcher {
	return &NodeFetcher{
		rpc:       rpc,
		converter: converter,
		timeout:   timeout,
	}
}

// FetchTransaction retrieves and converts the transaction with the given id.
func (f *NodeFetcher) FetchTransaction(ctx context.Context, txid string) (model.Transaction, error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: invalid txid %q: %w", chain.ErrNotFound, txid, err)
	}

	raw, err := callWithDeadline(ctx, f.timeout, func() (*btcjson.TxRawResult, error) {
		return f.rpc.GetRawTransactionVerbose(hash)
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("get raw transaction %s: %w", txid, classifyRPCError(err))
	}
	if raw == nil {
		return model.Transaction{}, fmt.Errorf("get raw transaction %s: %w: empty result", txid, chain.ErrMalformedResponse)
	}
	if !strings.EqualFold(raw.Txid, txid) {
		return model.Transaction{}, fmt.Errorf("get raw transaction %s: %w: node returned tx %q", txid, chain.ErrMalformedResponse, raw.Txid)
	}

	tx, err := f.converter.Convert(*raw)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("convert transaction %s: %w: %w", txid, chain.ErrMalformedResponse, err)
	}
	return tx, nil
}
