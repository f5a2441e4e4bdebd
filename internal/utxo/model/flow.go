package model

import "sort"

// Flow is either a ReceivedFlow or a SentFlow.
type Flow interface {
	isFlow()
}

// ReceivedFlow records that the address owns Transaction.Outputs[Index].
type ReceivedFlow struct {
	Index       uint32
	Transaction Transaction
}

// SentFlow records that the address owned Source's output Index and that the output
// is consumed by an input of Destination.
type SentFlow struct {
	Index       uint32
	Source      Transaction
	Destination Transaction
}

func (ReceivedFlow) isFlow() {}

func (SentFlow) isFlow() {}

// TransactionFlows pairs a transaction with the flows it contributes to one address.
type TransactionFlows struct {
	Transaction Transaction
	Flows       []Flow
}

// AddressFlowHistory lists the flows of one address per transaction, in the order the
// address history was returned.
type AddressFlowHistory struct {
	Address      string
	Transactions []TransactionFlows
}

// FlowKey identifies a confirmed transaction.
type FlowKey struct {
	TxID      string
	BlockTime int64
}

// GroupedFlowTable holds the flows of several addresses grouped by transaction.
type GroupedFlowTable map[FlowKey][]Flow

// Keys returns the table keys ordered by block time, then txid.
func (t GroupedFlowTable) Keys() []FlowKey {
	keys := make([]FlowKey, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].BlockTime != keys[j].BlockTime {
			return keys[i].BlockTime < keys[j].BlockTime
		}
		return keys[i].TxID < keys[j].TxID
	})
	return keys
}
