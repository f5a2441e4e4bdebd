package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	FlowService interface {
		BuildAddressFlowHistory(ctx context.Context, address string) (model.AddressFlowHistory, error)
		GroupedFlows(ctx context.Context, addresses []string) (model.GroupedFlowTable, error)
	}

	HTTPMetrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}
)
