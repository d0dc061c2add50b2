package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/comercial-api/internal/domain"
)

// FiscalSequence rango de NCF autorizado para un tipo de comprobante.
// Solo una secuencia activa por tipo; Counter es el próximo número a emitir.
type FiscalSequence struct {
	ID           string
	DocumentType string // código DGII: 01, 02, 03, 04
	Prefix       string // serie + tipo, ej: B01
	Counter      int64
	RangeStart   int64
	RangeEnd     int64
	Expiry       time.Time
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckUsable valida que se pueda emitir un número en el instante now.
// Orden: inactiva, agotada, vencida.
func (s *FiscalSequence) CheckUsable(now time.Time) error {
	if !s.Active {
		return domain.ErrNoActiveSequence
	}
	if s.Counter >= s.RangeEnd {
		return domain.ErrSequenceExhausted
	}
	if !s.Expiry.IsZero() && now.After(s.Expiry) {
		return domain.ErrSequenceExpired
	}
	return nil
}

// Format construye el NCF del contador actual: prefijo + 8 dígitos.
func (s *FiscalSequence) Format() string {
	return fmt.Sprintf("%s%08d", s.Prefix, s.Counter)
}

// Next formatea el número actual e incrementa el contador.
func (s *FiscalSequence) Next(now time.Time) (string, error) {
	if err := s.CheckUsable(now); err != nil {
		return "", err
	}
	number := s.Format()
	s.Counter++
	s.UpdatedAt = now
	return number, nil
}

// Remaining números disponibles antes de agotar el rango.
func (s *FiscalSequence) Remaining() int64 {
	if s.Counter >= s.RangeEnd {
		return 0
	}
	return s.RangeEnd - s.Counter
}
