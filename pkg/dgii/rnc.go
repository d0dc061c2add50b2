package dgii

import (
	"fmt"
	"unicode"
)

// pesos del dígito verificador del RNC (8 primeros dígitos).
var rncWeights = [8]int{7, 9, 8, 6, 5, 4, 3, 2}

// ValidateTaxID valida un RNC (9 dígitos) o una cédula (11 dígitos), con o sin guiones.
func ValidateTaxID(taxID string) error {
	digits := extractDigits(taxID)
	switch len(digits) {
	case 9:
		return validateRNC(digits)
	case 11:
		return validateCedula(digits)
	default:
		return fmt.Errorf("dgii: RNC debe tener 9 dígitos o cédula 11, se encontraron %d", len(digits))
	}
}

func validateRNC(digits []byte) error {
	var sum int
	for i, w := range rncWeights {
		sum += int(digits[i]-'0') * w
	}
	var expected int
	switch r := sum % 11; r {
	case 0:
		expected = 2
	case 1:
		expected = 1
	default:
		expected = 11 - r
	}
	if int(digits[8]-'0') != expected {
		return fmt.Errorf("dgii: dígito verificador del RNC inválido: esperado %d, recibido %c", expected, digits[8])
	}
	return nil
}

// validateCedula módulo 10 con pesos alternos 1,2 sobre los 10 primeros dígitos.
func validateCedula(digits []byte) error {
	var sum int
	for i := 0; i < 10; i++ {
		p := int(digits[i]-'0') * (i%2 + 1)
		if p >= 10 {
			p = p/10 + p%10
		}
		sum += p
	}
	expected := (10 - sum%10) % 10
	if int(digits[10]-'0') != expected {
		return fmt.Errorf("dgii: dígito verificador de la cédula inválido: esperado %d, recibido %c", expected, digits[10])
	}
	return nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
