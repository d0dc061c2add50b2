// Package dgii contiene catálogos y validaciones de identificadores fiscales
// de la República Dominicana (NCF, RNC, cédula).
package dgii

// =============================================================================
// Tipos de comprobante fiscal (NCF). El código va en las posiciones 2-3 del NCF.
// =============================================================================

const (
	TypeCreditoFiscal = "01" // Factura de crédito fiscal
	TypeConsumo       = "02" // Factura de consumo
	TypeNotaDebito    = "03" // Nota de débito
	TypeNotaCredito   = "04" // Nota de crédito
)

// DocumentTypeNames nombres legibles por código de tipo.
var DocumentTypeNames = map[string]string{
	TypeCreditoFiscal: "FACTURA DE CRÉDITO FISCAL",
	TypeConsumo:       "FACTURA DE CONSUMO",
	TypeNotaDebito:    "NOTA DE DÉBITO",
	TypeNotaCredito:   "NOTA DE CRÉDITO",
}

// IsValidDocumentType valida el código de tipo de comprobante.
func IsValidDocumentType(code string) bool {
	_, ok := DocumentTypeNames[code]
	return ok
}

// =============================================================================
// Series del NCF (primera letra).
// =============================================================================

const (
	SeriesPrinted    = "B" // comprobante impreso / sistema
	SeriesElectronic = "E" // comprobante electrónico (e-CF)
)

// IsValidSeries valida la letra de serie.
func IsValidSeries(s string) bool {
	return s == SeriesPrinted || s == SeriesElectronic
}

// Prefix arma el prefijo de 3 caracteres: serie + tipo (ej: B01).
func Prefix(series, docType string) string {
	return series + docType
}
