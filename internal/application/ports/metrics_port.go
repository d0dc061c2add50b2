package ports

// MetricsRecorder define el puerto de salida para métricas de negocio.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para pruebas y CLI.
type MetricsRecorder interface {
	FiscalNumberIssued(documentType string)
	FiscalAllocationFailed(documentType, code string)
	DocumentCreated(kind string)
	DocumentVoided(kind string)
	MovementRecorded(kind string)
	StockRejected(kind string)
	PaymentApplied(accountKind string)
	PaymentVoided(accountKind string)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) FiscalNumberIssued(string)            {}
func (NopMetrics) FiscalAllocationFailed(string, string) {}
func (NopMetrics) DocumentCreated(string)               {}
func (NopMetrics) DocumentVoided(string)                {}
func (NopMetrics) MovementRecorded(string)              {}
func (NopMetrics) StockRejected(string)                 {}
func (NopMetrics) PaymentApplied(string)                {}
func (NopMetrics) PaymentVoided(string)                 {}
