package bitcoin

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
)

type callResult[T any] struct {
	value T
	err   error
}

// callWithDeadline runs a blocking rpc call and gives up when ctx is done or timeout elapses.
// The btcd client has no per-call context, so an abandoned call finishes in the background.
func callWithDeadline[T any](ctx context.Context, timeout time.Duration, call func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan callResult[T], 1)
	go func() {
		v, err := call()
		done <- callResult[T]{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded && timeout > 0 {
			return zero, fmt.Errorf("%w: call exceeded %s", chain.ErrRPCFailure, timeout)
		}
		return zero, ctx.Err()
	}
}
