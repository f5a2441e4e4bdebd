package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"golang.org/x/sync/singleflight"
)

// TransactionCache memoizes fetched transactions for the lifetime of one build so a prior
// transaction funding several inputs is fetched once. Concurrent lookups of the same txid
// share a single fetch.
type TransactionCache struct {
	fetcher TransactionFetcher
	metrics CacheMetrics

	group singleflight.Group
	mu    sync.RWMutex
	local map[string]model.Transaction
}

// NewTransactionCache wraps fetcher with an empty cache. metrics may be nil.
func NewTransactionCache(fetcher TransactionFetcher, metrics CacheMetrics) *TransactionCache {
	return &TransactionCache{
		fetcher: fetcher,
		metrics: metrics,
		local:   make(map[string]model.Transaction),
	}
}

// Seed stores an already fetched transaction.
func (c *TransactionCache) Seed(tx model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[tx.TxID] = tx
}

// Len returns the number of cached transactions.
func (c *TransactionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.local)
}

// FetchTransaction returns the cached transaction or fetches and caches it. A caller waiting on
// a fetch started by another caller leaves as soon as its own ctx is done. When that shared fetch
// was cut short by the other caller's context, the waiter fetches again under its own.
func (c *TransactionCache) FetchTransaction(ctx context.Context, txid string) (model.Transaction, error) {
	if tx, ok := c.lookup(txid); ok {
		c.observeHit()
		return tx, nil
	}

	for {
		led := false
		ch := c.group.DoChan(txid, func() (any, error) {
			led = true
			if tx, ok := c.lookup(txid); ok {
				return tx, nil
			}
			c.observeMiss()
			tx, err := c.fetcher.FetchTransaction(ctx, txid)
			if err != nil {
				return nil, err
			}
			c.mu.Lock()
			c.local[txid] = tx
			c.mu.Unlock()
			return tx, nil
		})

		select {
		case <-ctx.Done():
			return model.Transaction{}, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				// another caller's cancellation cut the shared fetch short
				if !led && isContextError(res.Err) && ctx.Err() == nil {
					continue
				}
				return model.Transaction{}, res.Err
			}
			tx, ok := res.Val.(model.Transaction)
			if !ok {
				return model.Transaction{}, fmt.Errorf("cached value for tx %s has type %T", txid, res.Val)
			}
			return tx, nil
		}
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *TransactionCache) lookup(txid string) (model.Transaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tx, ok := c.local[txid]
	return tx, ok
}

func (c *TransactionCache) observeHit() {
	if c.metrics != nil {
		c.metrics.ObserveCacheHit()
	}
}

func (c *TransactionCache) observeMiss() {
	if c.metrics != nil {
		c.metrics.ObserveCacheMiss()
	}
}
