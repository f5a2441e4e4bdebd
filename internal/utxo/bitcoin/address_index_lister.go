package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/addressflow/internal/utxo/chain"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

const searchPageSize = 100

var _ chain.HistoryLister = (*AddressIndexLister)(nil)

// AddressIndexLister implements chain.HistoryLister with searchrawtransactions on a node
// running with the address index enabled.
type AddressIndexLister struct {
	rpc     RPCClient
	params  *chaincfg.Params
	timeout time.Duration
}

// NewAddressIndexLister creates a lister for the given network.
func NewAddressIndexLister(rpc RPCClient, network model.Network, timeout time.Duration) (*AddressIndexLister, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &AddressIndexLister{rpc: rpc, params: params, timeout: timeout}, nil
}

// ListHistory returns the txids touching address, oldest first.
func (l *AddressIndexLister) ListHistory(ctx context.Context, address string) ([]string, error) {
	addr, err := btcutil.DecodeAddress(address, l.params)
	if err != nil {
		return nil, fmt.Errorf("%w: decode address %q: %w", chain.ErrLookupFailure, address, err)
	}
	if !addr.IsForNet(l.params) {
		return nil, fmt.Errorf("%w: address %q is not for %s", chain.ErrLookupFailure, address, l.params.Name)
	}

	seen := make(map[string]struct{})
	txids := make([]string, 0)
	for skip := 0; ; skip += searchPageSize {
		page, err := callWithDeadline(ctx, l.timeout, func() ([]*btcjson.SearchRawTransactionsResult, error) {
			return l.rpc.SearchRawTransactionsVerbose(addr, skip, searchPageSize, false, false, nil)
		})
		if err != nil {
			err = classifyRPCError(err)
			if errors.Is(err, chain.ErrNotFound) {
				// the node reports an exhausted or empty history as "no information"
				break
			}
			if ctx.Err() != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: search transactions for %s: %w", chain.ErrLookupFailure, address, err)
		}

		for _, tx := range page {
			if tx == nil || tx.Txid == "" {
				continue
			}
			if _, ok := seen[tx.Txid]; ok {
				continue
			}
			seen[tx.Txid] = struct{}{}
			txids = append(txids, tx.Txid)
		}
		if len(page) < searchPageSize {
			break
		}
	}
	return txids, nil
}
