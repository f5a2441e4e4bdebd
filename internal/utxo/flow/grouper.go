package flow

import (
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

// GroupFlowHistories merges histories into one table keyed by (txid, blocktime). Flows for a
// transaction seen by several addresses are concatenated in history order. A txid reported with
// two different block times fails with *chain.InconsistentBlocktimeError.
func GroupFlowHistories(histories []model.AddressFlowHistory) (model.GroupedFlowTable, error) {
	table := make(model.GroupedFlowTable)
	blockTimes := make(map[string]int64)

	for _, history := range histories {
		for _, entry := range history.Transactions {
			tx := entry.Transaction
			if known, ok := blockTimes[tx.TxID]; ok && known != tx.BlockTime {
				return nil, &chain.InconsistentBlocktimeError{
					TxID:     tx.TxID,
					Address:  history.Address,
					Known:    known,
					Observed: tx.BlockTime,
				}
			}
			blockTimes[tx.TxID] = tx.BlockTime

			key := model.FlowKey{TxID: tx.TxID, BlockTime: tx.BlockTime}
			flows, ok := table[key]
			if !ok {
				flows = make([]model.Flow, 0, len(entry.Flows))
			}
			table[key] = append(flows, entry.Flows...)
		}
	}
	return table, nil
}
