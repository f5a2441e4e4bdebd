package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/goodnatureofminers/addressflow/pkg/safe"
)

const lookupChunkSize = 1000

type outpoint struct {
	txid string
	vout uint32
}

// batchBuilder turns fetched blocks into address index rows.
type batchBuilder struct {
	repo    IndexRepository
	coin    model.Coin
	network model.Network
}

// Build collects every addressed output of blocks, then resolves the owner of every spent
// output from the batch itself or from the index. Spent outputs without an address produce
// no spend row.
func (b *batchBuilder) Build(ctx context.Context, blocks []*chain.Block) (model.IndexBatch, error) {
	batch := model.IndexBatch{
		Outputs: make([]model.AddressOutput, 0),
		Spends:  make([]model.AddressSpend, 0),
		Blocks:  make([]model.IndexedBlock, 0, len(blocks)),
	}
	owners := make(map[outpoint]model.AddressOutput)

	for _, block := range blocks {
		blockTime := time.Unix(block.Time, 0).UTC()
		for txPos, tx := range block.Transactions {
			txIndex, err := safe.Uint32(txPos)
			if err != nil {
				return model.IndexBatch{}, fmt.Errorf("block %d tx index overflow: %w", block.Height, err)
			}
			for _, out := range tx.Outputs {
				if out.Address.IsNone() {
					continue
				}
				address := out.Address.UnwrapOr("")
				row := model.AddressOutput{
					Coin:        b.coin,
					Network:     b.network,
					Address:     address,
					TxID:        tx.TxID,
					TxIndex:     txIndex,
					Index:       out.Index,
					Value:       out.Value,
					BlockHeight: block.Height,
					BlockTime:   blockTime,
				}
				batch.Outputs = append(batch.Outputs, row)
				owners[outpoint{txid: tx.TxID, vout: out.Index}] = row
			}
		}
		batch.Blocks = append(batch.Blocks, model.IndexedBlock{
			Coin:      b.coin,
			Network:   b.network,
			Height:    block.Height,
			Hash:      block.Hash,
			Timestamp: blockTime,
		})
	}

	if err := b.loadOwners(ctx, blocks, owners); err != nil {
		return model.IndexBatch{}, err
	}

	for _, block := range blocks {
		blockTime := time.Unix(block.Time, 0).UTC()
		for txPos, tx := range block.Transactions {
			txIndex, err := safe.Uint32(txPos)
			if err != nil {
				return model.IndexBatch{}, fmt.Errorf("block %d tx index overflow: %w", block.Height, err)
			}
			for inPos, in := range tx.Inputs {
				spend, ok := in.(model.SpendingInput)
				if !ok {
					continue
				}
				owner, ok := owners[outpoint{txid: spend.PrevTxID, vout: spend.PrevVout}]
				if !ok {
					continue
				}
				inputIndex, err := safe.Uint32(inPos)
				if err != nil {
					return model.IndexBatch{}, fmt.Errorf("tx %s input index overflow: %w", tx.TxID, err)
				}
				batch.Spends = append(batch.Spends, model.AddressSpend{
					Coin:        b.coin,
					Network:     b.network,
					Address:     owner.Address,
					TxID:        tx.TxID,
					TxIndex:     txIndex,
					InputIndex:  inputIndex,
					PrevTxID:    spend.PrevTxID,
					PrevVout:    spend.PrevVout,
					Value:       owner.Value,
					BlockHeight: block.Height,
					BlockTime:   blockTime,
				})
			}
		}
	}

	return batch, nil
}

// loadOwners adds indexed outputs for spends that reference transactions outside the batch.
func (b *batchBuilder) loadOwners(ctx context.Context, blocks []*chain.Block, owners map[outpoint]model.AddressOutput) error {
	inBatch := make(map[string]struct{})
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			inBatch[tx.TxID] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	missing := make([]string, 0)
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			for _, in := range tx.Inputs {
				spend, ok := in.(model.SpendingInput)
				if !ok {
					continue
				}
				if _, ok := inBatch[spend.PrevTxID]; ok {
					continue
				}
				if _, ok := seen[spend.PrevTxID]; ok {
					continue
				}
				seen[spend.PrevTxID] = struct{}{}
				missing = append(missing, spend.PrevTxID)
			}
		}
	}

	for start := 0; start < len(missing); start += lookupChunkSize {
		end := min(start+lookupChunkSize, len(missing))
		found, err := b.repo.AddressOutputsByTxIDs(ctx, b.coin, b.network, missing[start:end])
		if err != nil {
			return fmt.Errorf("lookup spent outputs: %w", err)
		}
		for txid, outputs := range found {
			for _, out := range outputs {
				owners[outpoint{txid: txid, vout: out.Index}] = out
			}
		}
	}
	return nil
}
