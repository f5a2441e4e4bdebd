package model

import "time"

// AddressOutput is an address index row: Address received output Index of TxID.
// TxIndex is the position of TxID inside its block.
type AddressOutput struct {
	Coin        Coin
	Network     Network
	Address     string
	TxID        string
	TxIndex     uint32
	Index       uint32
	Value       uint64
	BlockHeight uint64
	BlockTime   time.Time
}

// AddressSpend is an address index row: Address spent PrevTxID:PrevVout in TxID.
type AddressSpend struct {
	Coin        Coin
	Network     Network
	Address     string
	TxID        string
	TxIndex     uint32
	InputIndex  uint32
	PrevTxID    string
	PrevVout    uint32
	Value       uint64
	BlockHeight uint64
	BlockTime   time.Time
}

// IndexedBlock marks a block whose address rows have been written.
type IndexedBlock struct {
	Coin      Coin
	Network   Network
	Height    uint64
	Hash      string
	Timestamp time.Time
}

// IndexBatch groups the rows produced for a contiguous range of blocks.
type IndexBatch struct {
	Outputs []AddressOutput
	Spends  []AddressSpend
	Blocks  []IndexedBlock
}
