// Package metrics provides prometheus collectors for the address flow services.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess  = "success"
	statusCanceled = "canceled"
	statusTimeout  = "timeout"
)

var (
	nodeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addressflow",
		Subsystem: "node",
		Name:      "calls_total",
		Help:      "Node RPC calls by method and outcome.",
	}, []string{"method", "coin", "network", "outcome"})
	nodeCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "node",
		Name:      "call_duration_seconds",
		Help:      "Node RPC call latency, rate limiter wait included.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5, 10},
	}, []string{"method", "coin", "network"})
)

// RPCClient records node RPC calls for one chain.
type RPCClient struct {
	coin    string
	network string
}

// NewRPCClient returns a collector labelled with coin and network.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{coin: labelOrUnknown(string(coin)), network: labelOrUnknown(string(network))}
}

// Observe counts the call under the outcome of err and records its latency.
func (m RPCClient) Observe(method string, err error, started time.Time) {
	nodeCallsTotal.WithLabelValues(method, m.coin, m.network, nodeOutcome(err)).Inc()
	nodeCallDuration.WithLabelValues(method, m.coin, m.network).Observe(time.Since(started).Seconds())
}

// nodeOutcome separates missing transactions and node-side rejections from transport failures.
func nodeOutcome(err error) string {
	if err == nil {
		return statusSuccess
	}
	if errors.Is(err, context.Canceled) {
		return statusCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return statusTimeout
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			return "not_found"
		}
		return "rejected"
	}
	return "transport"
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
