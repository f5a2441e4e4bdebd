package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const insertAddressSpendsQuery = `
INSERT INTO utxo_address_spends (
	coin,
	network,
	address,
	txid,
	tx_index,
	input_index,
	prev_txid,
	prev_vout,
	value,
	block_height,
	block_timestamp
) VALUES`

// InsertAddressSpends stores spent output rows.
func (r *Repository) InsertAddressSpends(ctx context.Context, spends []model.AddressSpend) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_address_spends", firstCoin(spends), firstNetwork(spends), err, start)
	}()

	if len(spends) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAddressSpendsQuery)
	if err != nil {
		return fmt.Errorf("prepare address spends batch: %w", err)
	}

	for _, spend := range spends {
		if err = batch.Append(
			string(spend.Coin),
			string(spend.Network),
			spend.Address,
			spend.TxID,
			spend.TxIndex,
			spend.InputIndex,
			spend.PrevTxID,
			spend.PrevVout,
			spend.Value,
			spend.BlockHeight,
			spend.BlockTime,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append address spend: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address spends: %w", err)
	}
	return nil
}
