package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const insertAddressOutputsQuery = `
INSERT INTO utxo_address_outputs (
	coin,
	network,
	address,
	txid,
	tx_index,
	output_index,
	value,
	block_height,
	block_timestamp
) VALUES`

// InsertAddressOutputs stores received output rows.
func (r *Repository) InsertAddressOutputs(ctx context.Context, outputs []model.AddressOutput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_address_outputs", firstCoin(outputs), firstNetwork(outputs), err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAddressOutputsQuery)
	if err != nil {
		return fmt.Errorf("prepare address outputs batch: %w", err)
	}

	for _, output := range outputs {
		if err = batch.Append(
			string(output.Coin),
			string(output.Network),
			output.Address,
			output.TxID,
			output.TxIndex,
			output.Index,
			output.Value,
			output.BlockHeight,
			output.BlockTime,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append address output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address outputs: %w", err)
	}
	return nil
}
