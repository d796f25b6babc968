package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

var _ stock.Recorder = (*Metrics)(nil)

// Metrics agrupa las métricas Prometheus de la API y del motor de stock.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	MutationsTotal      *prometheus.CounterVec
	MutationDuration    *prometheus.HistogramVec
	StockLevel          *prometheus.GaugeVec
	WSClients           prometheus.Gauge
}

// New registra las métricas en un registro propio con el prefijo dado.
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		MutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_stock_mutations_total",
			Help: "Stock mutations by kind and outcome",
		}, []string{"kind", "outcome"}),
		MutationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_stock_mutation_duration_seconds",
			Help:    "Duration of stock mutations, transaction included",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		StockLevel: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "_product_stock",
			Help: "Last committed stock level per product, in its base unit",
		}, []string{"product_id", "product_name"}),
		WSClients: f.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_ws_clients",
			Help: "Connected websocket clients on the stock feed",
		}),
	}
}

// ObserveMutation implementa stock.Recorder.
func (m *Metrics) ObserveMutation(kind entity.MutationKind, outcome string, elapsed time.Duration) {
	m.MutationsTotal.WithLabelValues(string(kind), outcome).Inc()
	m.MutationDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// SetStockLevel implementa stock.Recorder.
func (m *Metrics) SetStockLevel(productID, productName string, level decimal.Decimal) {
	m.StockLevel.WithLabelValues(productID, productName).Set(level.InexactFloat64())
}

// ObserveHTTP registra una petición HTTP.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro (pruebas).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
