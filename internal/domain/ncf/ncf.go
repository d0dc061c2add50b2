// Package ncf valida números de comprobante fiscal (NCF) recibidos de terceros.
// Formato: <serie B|E><tipo 01-04><secuencia 8 dígitos>, 11 caracteres en total.
package ncf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// Length longitud fija del NCF.
const Length = 11

var pattern = regexp.MustCompile(`^[BE](0[1-4])[0-9]{8}$`)

// Normalize quita espacios y pasa a mayúsculas.
func Normalize(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// ValidateFormat valida longitud y patrón; devuelve el código de tipo (01-04).
func ValidateFormat(number string) (string, error) {
	if len(number) != Length {
		return "", domain.ErrInvalidFiscalNumber
	}
	m := pattern.FindStringSubmatch(number)
	if m == nil {
		return "", domain.ErrInvalidFiscalNumber
	}
	return m[1], nil
}

// ValidateType valida formato y que el tipo coincida con el esperado.
func ValidateType(number, docType string) error {
	got, err := ValidateFormat(number)
	if err != nil {
		return err
	}
	if got != docType {
		return domain.ErrFiscalTypeMismatch
	}
	return nil
}

// Prefix primeros 3 caracteres (serie + tipo).
func Prefix(number string) string {
	if len(number) < 3 {
		return number
	}
	return number[:3]
}

// Sequence parte numérica del NCF.
func Sequence(number string) (int64, error) {
	if len(number) != Length {
		return 0, domain.ErrInvalidFiscalNumber
	}
	n, err := strconv.ParseInt(number[3:], 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidFiscalNumber
	}
	return n, nil
}

// ValidateSequence exige que number sea estrictamente mayor que last dentro del mismo prefijo.
// last vacío acepta cualquier número válido; un prefijo distinto no se compara.
func ValidateSequence(number, last string) error {
	if _, err := ValidateFormat(number); err != nil {
		return err
	}
	if last == "" || Prefix(last) != Prefix(number) {
		return nil
	}
	cur, err := Sequence(number)
	if err != nil {
		return err
	}
	prev, err := Sequence(last)
	if err != nil {
		return nil
	}
	if cur <= prev {
		return domain.ErrFiscalNumberNotIncreasing
	}
	return nil
}

// ValidPrefix valida un prefijo de secuencia propia y que corresponda al tipo.
func ValidPrefix(prefix, docType string) error {
	if len(prefix) != 3 || !dgii.IsValidSeries(prefix[:1]) || !dgii.IsValidDocumentType(docType) {
		return domain.ErrInvalidFiscalNumber
	}
	if prefix[1:] != docType {
		return domain.ErrFiscalTypeMismatch
	}
	return nil
}
