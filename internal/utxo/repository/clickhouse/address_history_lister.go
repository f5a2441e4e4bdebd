package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

var _ chain.HistoryLister = (*AddressHistoryLister)(nil)

// AddressHistoryLister serves chain.HistoryLister from the ClickHouse address index.
type AddressHistoryLister struct {
	repo    HistoryRepository
	coin    model.Coin
	network model.Network
}

// NewAddressHistoryLister binds repo to one coin and network.
func NewAddressHistoryLister(repo HistoryRepository, coin model.Coin, network model.Network) *AddressHistoryLister {
	return &AddressHistoryLister{repo: repo, coin: coin, network: network}
}

// ListHistory returns the indexed history of address.
func (l *AddressHistoryLister) ListHistory(ctx context.Context, address string) ([]string, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", chain.ErrLookupFailure)
	}
	txids, err := l.repo.AddressHistory(ctx, l.coin, l.network, address)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", chain.ErrLookupFailure, err)
	}
	return txids, nil
}
