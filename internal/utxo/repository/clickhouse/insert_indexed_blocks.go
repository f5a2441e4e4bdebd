package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const insertIndexedBlocksQuery = `
INSERT INTO utxo_indexed_blocks (
	coin,
	network,
	height,
	hash,
	timestamp
) VALUES`

// InsertIndexedBlocks marks blocks as indexed.
func (r *Repository) InsertIndexedBlocks(ctx context.Context, blocks []model.IndexedBlock) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_indexed_blocks", firstCoin(blocks), firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertIndexedBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare indexed blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Coin),
			string(block.Network),
			block.Height,
			block.Hash,
			block.Timestamp,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append indexed block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert indexed blocks: %w", err)
	}
	return nil
}

func firstCoin[T any](items []T) model.Coin {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.AddressOutput:
		return v.Coin
	case model.AddressSpend:
		return v.Coin
	case model.IndexedBlock:
		return v.Coin
	default:
		return ""
	}
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.AddressOutput:
		return v.Network
	case model.AddressSpend:
		return v.Network
	case model.IndexedBlock:
		return v.Network
	default:
		return ""
	}
}
