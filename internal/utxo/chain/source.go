// Package chain defines interfaces, errors and helpers shared between UTXO flow components.
package chain

import (
	"context"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// HistoryLister lists the ids of the transactions touching an address.
	HistoryLister interface {
		ListHistory(ctx context.Context, address string) ([]string, error)
	}

	// TransactionFetcher fetches a full transaction by id.
	TransactionFetcher interface {
		FetchTransaction(ctx context.Context, txid string) (model.Transaction, error)
	}

	// BlockSource provides converted blocks for address indexing.
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*Block, error)
	}

	// CacheMetrics records transaction cache lookups.
	CacheMetrics interface {
		ObserveCacheHit()
		ObserveCacheMiss()
	}
)

// Block is a block with its converted transactions.
type Block struct {
	Height       uint64
	Hash         string
	Time         int64
	Transactions []model.Transaction
}
