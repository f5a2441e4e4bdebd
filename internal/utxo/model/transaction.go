// Package model defines domain models for UTXO address flows.
package model

import "github.com/lightningnetwork/lnd/fn/v2"

// Transaction is a fetched ledger transaction. It is treated as immutable once built
// and may be shared by any number of flows.
type Transaction struct {
	Coin      Coin
	Network   Network
	TxID      string
	BlockTime int64
	Inputs    []Input
	Outputs   []Output
}

// OutputAt returns the output whose index is n.
func (t Transaction) OutputAt(n uint32) (Output, bool) {
	if int64(n) < int64(len(t.Outputs)) && t.Outputs[n].Index == n {
		return t.Outputs[n], true
	}
	for _, out := range t.Outputs {
		if out.Index == n {
			return out, true
		}
	}
	return Output{}, false
}

// Output represents an output produced by a transaction. Address is absent for
// non-standard or unparseable scripts.
type Output struct {
	Index   uint32
	Value   uint64
	Address fn.Option[string]
}

// PaysTo reports whether the output's resolved address equals address.
func (o Output) PaysTo(address string) bool {
	return o.Address.IsSome() && o.Address.UnwrapOr("") == address
}

// Input is either a CoinbaseInput or a SpendingInput.
type Input interface {
	isInput()
}

// CoinbaseInput is the block reward input of a coinbase transaction. It spends nothing.
type CoinbaseInput struct {
	Coinbase string
	Sequence uint32
}

// SpendingInput references output PrevVout of transaction PrevTxID.
type SpendingInput struct {
	PrevTxID string
	PrevVout uint32
	Sequence uint32
}

func (CoinbaseInput) isInput() {}

func (SpendingInput) isInput() {}
