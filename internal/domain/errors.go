package domain

import (
	"errors"
	"fmt"
)

// Clases de error de dominio (sin dependencias externas).
// Los errores con código (Error) envuelven una de estas clases para que
// errors.Is(err, ErrConflict) funcione en cualquier capa.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrResourceExhausted = errors.New("recurso agotado")
	ErrInternal          = errors.New("error interno")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Error error de negocio con código estable para clientes (HTTP, CLI).
type Error struct {
	Code    string
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Unwrap expone la clase para errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// Is compara por código además de por clase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(kind error, code, msg string) *Error {
	return &Error{Code: code, Kind: kind, Message: msg}
}

// Errores de negocio del motor.
var (
	ErrAlreadyVoid               = newError(ErrConflict, "ALREADY_VOID", "el registro ya está anulado")
	ErrDuplicate                 = newError(ErrConflict, "DUPLICATE", "recurso duplicado")
	ErrSequenceExists            = newError(ErrConflict, "SEQUENCE_EXISTS", "ya existe una secuencia activa para el tipo")
	ErrExcessPayment             = newError(ErrConflict, "EXCESS_PAYMENT", "el monto excede el balance pendiente")
	ErrDuplicateFiscalNumber     = newError(ErrConflict, "DUPLICATE_FISCAL_NUMBER", "el NCF ya fue registrado")
	ErrAccountExists             = newError(ErrConflict, "ACCOUNT_EXISTS", "el documento ya tiene una cuenta asociada")
	ErrAccountNotPayable         = newError(ErrConflict, "ACCOUNT_NOT_PAYABLE", "solo se pueden pagar cuentas pendientes")
	ErrAccountVoid               = newError(ErrConflict, "ACCOUNT_VOID", "la cuenta está anulada")
	ErrRestoreExceedsOriginal    = newError(ErrConflict, "RESTORE_EXCEEDS_ORIGINAL", "el balance restaurado excede el monto original")
	ErrInvalidTransition         = newError(ErrConflict, "INVALID_TRANSITION", "transición de estado no permitida")
	ErrNoActiveSequence          = newError(ErrNotFound, "NO_ACTIVE_SEQUENCE", "no hay secuencia NCF activa para el tipo")
	ErrSequenceExhausted         = newError(ErrResourceExhausted, "SEQUENCE_EXHAUSTED", "la secuencia NCF está agotada")
	ErrSequenceExpired           = newError(ErrResourceExhausted, "SEQUENCE_EXPIRED", "la secuencia NCF está vencida")
	ErrInsufficientStock         = newError(ErrResourceExhausted, "INSUFFICIENT_STOCK", "stock insuficiente")
	ErrInvalidFiscalNumber       = newError(ErrInvalidInput, "INVALID_FISCAL_NUMBER", "formato de NCF inválido")
	ErrFiscalNumberNotIncreasing = newError(ErrInvalidInput, "FISCAL_NUMBER_NOT_INCREASING", "el NCF debe ser mayor al último registrado")
	ErrFiscalTypeMismatch        = newError(ErrInvalidInput, "FISCAL_TYPE_MISMATCH", "el prefijo no corresponde al tipo de comprobante")
)

// Validation crea un error de validación con mensaje propio.
func Validation(format string, args ...any) error {
	return newError(ErrInvalidInput, "VALIDATION", fmt.Sprintf(format, args...))
}

// NotFound crea un error de recurso inexistente para la entidad indicada.
func NotFound(entity string) error {
	return newError(ErrNotFound, "NOT_FOUND", entity+" no encontrado")
}

// Code devuelve el código estable del error, o "" si no es de dominio.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrResourceExhausted):
		return "RESOURCE_EXHAUSTED"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	}
	return ""
}
