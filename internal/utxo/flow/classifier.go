// Package flow derives per-address sent and received flows from transaction history.
package flow

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"golang.org/x/sync/errgroup"
)

// Classifier derives the flows a single transaction contributes to an address.
type Classifier struct {
	fetcher      TransactionFetcher
	inputWorkers int
}

// NewClassifier creates a classifier resolving at most inputWorkers prior transactions at a time.
func NewClassifier(fetcher TransactionFetcher, inputWorkers int) *Classifier {
	if inputWorkers < 1 {
		inputWorkers = 1
	}
	return &Classifier{fetcher: fetcher, inputWorkers: inputWorkers}
}

// Classify returns the Received flows of tx in output order followed by its Sent flows in input
// order. Any prior transaction that cannot be resolved fails the whole transaction.
func (c *Classifier) Classify(ctx context.Context, tx model.Transaction, address string) ([]model.Flow, error) {
	flows := make([]model.Flow, 0)
	for _, out := range tx.Outputs {
		if out.PaysTo(address) {
			flows = append(flows, model.ReceivedFlow{Index: out.Index, Transaction: tx})
		}
	}

	for idx, in := range tx.Inputs {
		switch in.(type) {
		case model.CoinbaseInput, model.SpendingInput:
		default:
			return nil, fmt.Errorf("%w: tx %s input %d has unsupported type %T", chain.ErrMalformedResponse, tx.TxID, idx, in)
		}
	}

	sent := make([]model.Flow, len(tx.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.inputWorkers)
	for idx, in := range tx.Inputs {
		spend, ok := in.(model.SpendingInput)
		if !ok {
			// coinbase inputs never spend from an address
			continue
		}
		g.Go(func() error {
			prior, err := c.fetcher.FetchTransaction(gctx, spend.PrevTxID)
			if err != nil {
				return fmt.Errorf("resolve input %d of tx %s: %w", idx, tx.TxID, err)
			}
			out, ok := prior.OutputAt(spend.PrevVout)
			if !ok {
				return fmt.Errorf("%w: tx %s input %d spends missing output %s:%d",
					chain.ErrMalformedResponse, tx.TxID, idx, spend.PrevTxID, spend.PrevVout)
			}
			if out.PaysTo(address) {
				sent[idx] = model.SentFlow{Index: out.Index, Source: prior, Destination: tx}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range sent {
		if f != nil {
			flows = append(flows, f)
		}
	}
	return flows, nil
}
