package metrics

import (
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	flowBuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addressflow",
		Subsystem: "flow_builder",
		Name:      "builds_total",
		Help:      "Count of address flow history builds.",
	}, []string{"coin", "network", "status"})

	flowBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "flow_builder",
		Name:      "build_duration_seconds",
		Help:      "Duration of address flow history builds.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"coin", "network", "status"})

	flowBuildTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "flow_builder",
		Name:      "build_transactions",
		Help:      "Number of history transactions per address build.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"coin", "network"})

	transactionCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addressflow",
		Subsystem: "transaction_cache",
		Name:      "lookups_total",
		Help:      "Count of transaction cache lookups by result.",
	}, []string{"coin", "network", "result"})
)

// FlowBuilder tracks address flow builds and transaction cache efficiency.
type FlowBuilder struct {
	coin    model.Coin
	network model.Network
}

// NewFlowBuilder constructs a metrics collector for flow builds.
func NewFlowBuilder(coin model.Coin, network model.Network) *FlowBuilder {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &FlowBuilder{coin: coin, network: network}
}

// ObserveBuild records one address build.
func (m FlowBuilder) ObserveBuild(err error, transactions int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	flowBuildTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	flowBuildDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		flowBuildTransactions.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(transactions))
	}
}

func (m FlowBuilder) ObserveCacheHit() {
	transactionCacheLookups.WithLabelValues(string(m.coin), string(m.network), "hit").Inc()
}

func (m FlowBuilder) ObserveCacheMiss() {
	transactionCacheLookups.WithLabelValues(string(m.coin), string(m.network), "miss").Inc()
}
