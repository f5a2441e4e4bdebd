package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*chain.Block, error)
	}

	IndexRepository interface {
		MaxIndexedHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
		AddressOutputsByTxIDs(ctx context.Context, coin model.Coin, network model.Network, txids []string) (map[string][]model.AddressOutput, error)
		InsertAddressOutputs(ctx context.Context, outputs []model.AddressOutput) error
		InsertAddressSpends(ctx context.Context, spends []model.AddressSpend) error
		InsertIndexedBlocks(ctx context.Context, blocks []model.IndexedBlock) error
	}

	IndexerMetrics interface {
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		SetIndexedHeight(height uint64)
	}
)
