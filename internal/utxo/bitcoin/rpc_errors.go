package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
)

// classifyRPCError maps btcd client errors onto chain error kinds.
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, chain.ErrRPCFailure) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", chain.ErrRPCFailure, err)
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
		return fmt.Errorf("%w: %w", chain.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", chain.ErrRPCFailure, err)
}
