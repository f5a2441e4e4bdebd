package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const addressOutputsByTxIDsQuery = `
SELECT
	txid,
	output_index,
	anyLast(address) AS address,
	anyLast(value) AS value
FROM utxo_address_outputs_lookup
WHERE coin = ? AND network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
ORDER BY output_index ASC
SETTINGS max_threads = 1`

// AddressOutputsByTxIDs returns the indexed outputs of the given transactions keyed by txid.
func (r *Repository) AddressOutputsByTxIDs(ctx context.Context, coin model.Coin, network model.Network, txids []string) (result map[string][]model.AddressOutput, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("address_outputs_by_txids", coin, network, err, start)
	}()

	result = make(map[string][]model.AddressOutput, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	rows, err := r.conn.Query(ctx, addressOutputsByTxIDsQuery, coin, network, txids)
	if err != nil {
		return nil, fmt.Errorf("query address outputs by txids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		output := model.AddressOutput{Coin: coin, Network: network}
		if err = rows.Scan(
			&output.TxID,
			&output.Index,
			&output.Address,
			&output.Value,
		); err != nil {
			return nil, fmt.Errorf("scan address output: %w", err)
		}
		result[output.TxID] = append(result[output.TxID], output)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address outputs: %w", err)
	}

	return result, nil
}
