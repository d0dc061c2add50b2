// Package metrics adaptador Prometheus de ports.MetricsRecorder.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/comercial-api/internal/application/ports"
)

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder contadores de negocio y de la API HTTP sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	fiscalIssued     *prometheus.CounterVec
	fiscalFailed     *prometheus.CounterVec
	documentsCreated *prometheus.CounterVec
	documentsVoided  *prometheus.CounterVec
	movements        *prometheus.CounterVec
	stockRejected    *prometheus.CounterVec
	paymentsApplied  *prometheus.CounterVec
	paymentsVoided   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewRecorder registra las métricas y los colectores de proceso y runtime.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fiscalIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_fiscal_numbers_issued_total",
			Help: "NCF emitidos por tipo de comprobante.",
		}, []string{"document_type"}),
		fiscalFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_fiscal_allocation_failures_total",
			Help: "Asignaciones de NCF rechazadas por tipo y código.",
		}, []string{"document_type", "code"}),
		documentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_documents_created_total",
			Help: "Documentos completados por tipo.",
		}, []string{"kind"}),
		documentsVoided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_documents_voided_total",
			Help: "Documentos anulados por tipo.",
		}, []string{"kind"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_inventory_movements_total",
			Help: "Movimientos de inventario registrados por tipo.",
		}, []string{"kind"}),
		stockRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_inventory_rejected_total",
			Help: "Movimientos rechazados por stock insuficiente.",
		}, []string{"kind"}),
		paymentsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_payments_applied_total",
			Help: "Pagos aplicados por tipo de cuenta.",
		}, []string{"account_kind"}),
		paymentsVoided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_payments_voided_total",
			Help: "Pagos anulados por tipo de cuenta.",
		}, []string{"account_kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comercial_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "comercial_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.fiscalIssued, r.fiscalFailed,
		r.documentsCreated, r.documentsVoided,
		r.movements, r.stockRejected,
		r.paymentsApplied, r.paymentsVoided,
		r.httpRequests, r.httpDuration,
	)
	return r
}

// Registry expone el registro (pruebas y exposición).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler handler HTTP de exposición en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) FiscalNumberIssued(documentType string) {
	r.fiscalIssued.WithLabelValues(documentType).Inc()
}

func (r *Recorder) FiscalAllocationFailed(documentType, code string) {
	r.fiscalFailed.WithLabelValues(documentType, code).Inc()
}

func (r *Recorder) DocumentCreated(kind string)  { r.documentsCreated.WithLabelValues(kind).Inc() }
func (r *Recorder) DocumentVoided(kind string)   { r.documentsVoided.WithLabelValues(kind).Inc() }
func (r *Recorder) MovementRecorded(kind string) { r.movements.WithLabelValues(kind).Inc() }
func (r *Recorder) StockRejected(kind string)    { r.stockRejected.WithLabelValues(kind).Inc() }

func (r *Recorder) PaymentApplied(accountKind string) {
	r.paymentsApplied.WithLabelValues(accountKind).Inc()
}

func (r *Recorder) PaymentVoided(accountKind string) {
	r.paymentsVoided.WithLabelValues(accountKind).Inc()
}

// ObserveHTTP registra una petición ya respondida.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
