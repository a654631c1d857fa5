package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the service exports.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	PredictionsTotal   prometheus.Counter
	PredictionLatency  prometheus.Histogram
	TrainingRunsTotal  prometheus.Counter
	TrainingDuration   prometheus.Histogram
	ModelR2            prometheus.Gauge
	CorpusSize         prometheus.Gauge
	ActiveWizards      prometheus.Gauge
	WebsocketClients   prometheus.Gauge
	EnergyPriceCurrent *prometheus.GaugeVec
}

// NewMetrics registers all collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assettco_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assettco_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		PredictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "assettco_predictions_total",
			Help: "Maintenance cost predictions served.",
		}),
		PredictionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assettco_prediction_duration_seconds",
			Help:    "Model inference latency.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25},
		}),
		TrainingRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "assettco_training_runs_total",
			Help: "Completed training runs.",
		}),
		TrainingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "assettco_training_duration_seconds",
			Help:    "Training run duration.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		ModelR2: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assettco_model_r2",
			Help: "Test R2 of the active model.",
		}),
		CorpusSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assettco_corpus_assets",
			Help: "Assets in the training corpus.",
		}),
		ActiveWizards: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assettco_wizard_sessions_active",
			Help: "Open intake wizard sessions.",
		}),
		WebsocketClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "assettco_websocket_clients",
			Help: "Connected dashboard websocket clients.",
		}),
		EnergyPriceCurrent: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "assettco_energy_price_eur_kwh",
			Help: "Last resolved electricity price per country.",
		}, []string{"country", "source"}),
	}
}
