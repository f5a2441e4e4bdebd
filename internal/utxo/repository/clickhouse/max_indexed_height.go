package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const maxIndexedHeightQuery = `
SELECT
	count() AS blocks,
	coalesce(max(height), toUInt64(0)) AS max_height
FROM utxo_indexed_blocks
WHERE coin = ? AND network = ?`

// MaxIndexedHeight returns the highest indexed block. ok is false when nothing is indexed yet.
func (r *Repository) MaxIndexedHeight(ctx context.Context, coin model.Coin, network model.Network) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_indexed_height", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxIndexedHeightQuery, coin, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max indexed height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, fmt.Errorf("max indexed height not found")
	}

	var blocks uint64
	if err = rows.Scan(&blocks, &height); err != nil {
		return 0, false, fmt.Errorf("scan max indexed height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max indexed height: %w", err)
	}

	return height, blocks > 0, nil
}
