package metrics

import (
	"time"

	"github.com/goodnatureofminers/addressflow/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "addressflow",
		Subsystem: "address_indexer",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"coin", "network", "status"})

	indexerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "address_indexer",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	indexerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "address_indexer",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	indexerProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "addressflow",
		Subsystem: "address_indexer",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of fetching and converting a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	indexerIndexedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "addressflow",
		Subsystem: "address_indexer",
		Name:      "indexed_height",
		Help:      "Highest block height written to the address index.",
	}, []string{"coin", "network"})
)

// AddressIndexer tracks the address index ingester.
type AddressIndexer struct {
	coin    model.Coin
	network model.Network
}

func NewAddressIndexer(coin model.Coin, network model.Network) *AddressIndexer {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &AddressIndexer{coin: coin, network: network}
}

func (m AddressIndexer) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerProcessBatchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	indexerProcessBatchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	indexerProcessBatchSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(heights))
}

func (m AddressIndexer) ObserveProcessHeight(err error, height uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	indexerProcessHeightDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m AddressIndexer) SetIndexedHeight(height uint64) {
	indexerIndexedHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}
