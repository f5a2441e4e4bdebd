package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const addressHistoryQuery = `
SELECT txid
FROM (
	SELECT txid, block_height, tx_index
	FROM utxo_address_outputs
	WHERE coin = ? AND network = ? AND address = ?
	UNION ALL
	SELECT txid, block_height, tx_index
	FROM utxo_address_spends
	WHERE coin = ? AND network = ? AND address = ?
)
GROUP BY txid
ORDER BY
	min(block_height) ASC,
	min(tx_index) ASC,
	txid ASC`

// AddressHistory returns the txids that paid to or spent from address in chain order.
func (r *Repository) AddressHistory(ctx context.Context, coin model.Coin, network model.Network, address string) (txids []string, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("address_history", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, addressHistoryQuery, coin, network, address, coin, network, address)
	if err != nil {
		return nil, fmt.Errorf("query address history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	txids = make([]string, 0)
	for rows.Next() {
		var txid string
		if err = rows.Scan(&txid); err != nil {
			return nil, fmt.Errorf("scan address history: %w", err)
		}
		txids = append(txids, txid)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address history: %w", err)
	}

	return txids, nil
}
