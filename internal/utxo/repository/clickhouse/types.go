package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records repository operations.
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time)
	}

	// Conn is the part of the ClickHouse connection used by the repository.
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}

	// Rows iterates a query result.
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	// Batch accumulates rows for one INSERT.
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}

	// HistoryRepository lists address history from the index.
	HistoryRepository interface {
		AddressHistory(ctx context.Context, coin model.Coin, network model.Network, address string) ([]string, error)
	}
)
