package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addressflow",
		Subsystem: "address_index",
		Name:      "queries_total",
		Help:      "Address index queries and inserts by outcome.",
	}, []string{"query", "coin", "network", "outcome"})
	indexQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "address_index",
		Name:      "query_duration_seconds",
		Help:      "Address index query latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"query", "coin", "network"})
)

// ClickhouseRepository records address index queries. Coin and network come per call since
// one repository serves every chain.
type ClickhouseRepository struct{}

// NewClickhouseRepository returns the address index collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe counts query under the outcome of err and records its latency.
func (m ClickhouseRepository) Observe(query string, coin model.Coin, network model.Network, err error, started time.Time) {
	c, n := labelOrUnknown(string(coin)), labelOrUnknown(string(network))
	indexQueriesTotal.WithLabelValues(query, c, n, indexOutcome(err)).Inc()
	indexQueryDuration.WithLabelValues(query, c, n).Observe(time.Since(started).Seconds())
}

// indexOutcome tells server exceptions apart from connection failures.
func indexOutcome(err error) string {
	if err == nil {
		return statusSuccess
	}
	if errors.Is(err, context.Canceled) {
		return statusCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return statusTimeout
	}
	var exc *clickhouse.Exception
	if errors.As(err, &exc) {
		return "server_exception"
	}
	return "connection"
}
