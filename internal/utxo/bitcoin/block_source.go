package bitcoin

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/goodnatureofminers/addressflow/pkg/safe"
)

var _ chain.BlockSource = (*BlockSource)(nil)

// BlockSource implements chain.BlockSource for Bitcoin.
type BlockSource struct {
	rpc       RPCClient
	converter TransactionConverter
	timeout   time.Duration
}

// NewBlockSource creates a BlockSource for Bitcoin.
func NewBlockSource(rpc RPCClient, converter TransactionConverter, timeout time.Duration) *BlockSource {
	return &BlockSource{
		rpc:       rpc,
		converter: converter,
		timeout:   timeout,
	}
}

// LatestHeight returns the latest block height from the node.
func (s *BlockSource) LatestHeight(ctx context.Context) (uint64, error) {
	count, err := callWithDeadline(ctx, s.timeout, s.rpc.GetBlockCount)
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", classifyRPCError(err))
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves a block with converted transactions at the given height.
func (s *BlockSource) FetchBlock(ctx context.Context, height uint64) (*chain.Block, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height exceeds rpc limit: %w", err)
	}
	hash, err := callWithDeadline(ctx, s.timeout, func() (*chainhash.Hash, error) {
		return s.rpc.GetBlockHash(rpcHeight)
	})
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, classifyRPCError(err))
	}
	src, err := callWithDeadline(ctx, s.timeout, func() (*btcjson.GetBlockVerboseTxResult, error) {
		return s.rpc.GetBlockVerboseTx(hash)
	})
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, classifyRPCError(err))
	}
	if src == nil {
		return nil, fmt.Errorf("get block %s: %w: empty result", hash, chain.ErrMalformedResponse)
	}

	txs := make([]model.Transaction, 0, len(src.Tx))
	for _, raw := range src.Tx {
		tx, err := s.converter.Convert(raw)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w: %w", height, chain.ErrMalformedResponse, err)
		}
		// verbose block transactions carry no blocktime of their own
		tx.BlockTime = src.Time
		txs = append(txs, tx)
	}

	return &chain.Block{
		Height:       height,
		Hash:         src.Hash,
		Time:         src.Time,
		Transactions: txs,
	}, nil
}
