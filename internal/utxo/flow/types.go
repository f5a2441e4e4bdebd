package flow

import (
	"context"
	"time"

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

	// BuilderMetrics records flow builds and transaction cache lookups.
	BuilderMetrics interface {
		ObserveBuild(err error, transactions int, started time.Time)
		ObserveCacheHit()
		ObserveCacheMiss()
	}
)
