package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupFailure reports that an address history could not be listed.
	ErrLookupFailure = errors.New("address history lookup failed")
	// ErrNotFound reports that the ledger has no transaction with the requested id.
	ErrNotFound = errors.New("transaction not found")
	// ErrRPCFailure reports a transport or protocol error talking to a collaborator.
	ErrRPCFailure = errors.New("rpc failure")
	// ErrMalformedResponse reports a payload that does not have the transaction shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInconsistentBlocktime reports one txid observed with two different block times.
	ErrInconsistentBlocktime = errors.New("inconsistent blocktime")
)

// InconsistentBlocktimeError describes a txid reported with different block times
// by different addresses.
type InconsistentBlocktimeError struct {
	TxID     string
	Address  string
	Known    int64
	Observed int64
}

func (e *InconsistentBlocktimeError) Error() string {
	return fmt.Sprintf("%s: tx %s has blocktime %d, address %s reports %d",
		ErrInconsistentBlocktime, e.TxID, e.Known, e.Address, e.Observed)
}

// Is matches ErrInconsistentBlocktime.
func (e *InconsistentBlocktimeError) Is(target error) bool {
	return target == ErrInconsistentBlocktime
}
