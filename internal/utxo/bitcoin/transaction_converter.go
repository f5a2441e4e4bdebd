package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

// transactionConverter converts rpc transactions to domain transactions using a decoder.
type transactionConverter struct {
	decoder ScriptDecoder
	coin    model.Coin
	network model.Network
}

// NewTransactionConverter constructs a converter that turns verbose RPC transactions into domain
// transactions for the given network.
func NewTransactionConverter(decoder ScriptDecoder, network model.Network) TransactionConverter {
	return &transactionConverter{decoder: decoder, coin: model.BTC, network: network}
}

func (c *transactionConverter) Convert(tx btcjson.TxRawResult) (model.Transaction, error) {
	if tx.Txid == "" {
		return model.Transaction{}, fmt.Errorf("transaction without txid")
	}

	blockTime := tx.Blocktime
	if blockTime == 0 {
		blockTime = tx.Time
	}

	inputs := make([]model.Input, 0, len(tx.Vin))
	for idx, vin := range tx.Vin {
		if vin.IsCoinBase() {
			inputs = append(inputs, model.CoinbaseInput{Coinbase: vin.Coinbase, Sequence: vin.Sequence})
			continue
		}
		if vin.Txid == "" {
			return model.Transaction{}, fmt.Errorf("tx %s input %d has no prior txid", tx.Txid, idx)
		}
		inputs = append(inputs, model.SpendingInput{
			PrevTxID: vin.Txid,
			PrevVout: vin.Vout,
			Sequence: vin.Sequence,
		})
	}

	outputs := make([]model.Output, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return model.Transaction{}, fmt.Errorf("tx %s output %d negative value: %f", tx.Txid, idx, vout.Value)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d safe value: %w", tx.Txid, idx, err)
		}
		address, err := c.decoder.decodeAddress(vout.ScriptPubKey)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("decode address for tx %s output %d: %w", tx.Txid, idx, err)
		}
		outputs = append(outputs, model.Output{
			Index:   vout.N,
			Value:   value,
			Address: address,
		})
	}

	return model.Transaction{
		Coin:      c.coin,
		Network:   c.network,
		TxID:      tx.Txid,
		BlockTime: blockTime,
		Inputs:    inputs,
		Outputs:   outputs,
	}, nil
}
