package ncf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/domain"
	"github.com/jhoicas/comercial-api/internal/domain/ncf"
)

// ── Formato ───────────────────────────────────────────────────────────────────

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		name    string
		number  string
		docType string
		err     error
	}{
		{"crédito fiscal", "B0100000001", "01", nil},
		{"consumo", "B0200001234", "02", nil},
		{"nota de crédito electrónica", "E0499999999", "04", nil},
		{"serie P no aceptada", "P0100000001", "", domain.ErrInvalidFiscalNumber},
		{"tipo fuera de rango", "B0500000001", "", domain.ErrInvalidFiscalNumber},
		{"muy corto", "B010000001", "", domain.ErrInvalidFiscalNumber},
		{"muy largo", "B010000000001", "", domain.ErrInvalidFiscalNumber},
		{"letras en secuencia", "B01000000A1", "", domain.ErrInvalidFiscalNumber},
		{"minúscula", "b0100000001", "", domain.ErrInvalidFiscalNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ncf.ValidateFormat(tc.number)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.docType, got)
		})
	}
}

func TestValidateType_PrefijoNoCorresponde(t *testing.T) {
	err := ncf.ValidateType("B0200000001", "01")
	assert.ErrorIs(t, err, domain.ErrFiscalTypeMismatch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Secuencia ─────────────────────────────────────────────────────────────────

func TestValidateSequence(t *testing.T) {
	assert.NoError(t, ncf.ValidateSequence("B0100000010", ""), "sin anterior acepta")
	assert.NoError(t, ncf.ValidateSequence("B0100000011", "B0100000010"))
	assert.ErrorIs(t, ncf.ValidateSequence("B0100000010", "B0100000010"), domain.ErrFiscalNumberNotIncreasing)
	assert.ErrorIs(t, ncf.ValidateSequence("B0100000009", "B0100000010"), domain.ErrFiscalNumberNotIncreasing)
	assert.NoError(t, ncf.ValidateSequence("B0200000001", "B0100000010"), "otro prefijo no se compara")
}

func TestValidPrefix(t *testing.T) {
	assert.NoError(t, ncf.ValidPrefix("B01", "01"))
	assert.NoError(t, ncf.ValidPrefix("E04", "04"))
	assert.ErrorIs(t, ncf.ValidPrefix("B02", "01"), domain.ErrFiscalTypeMismatch)
	assert.ErrorIs(t, ncf.ValidPrefix("X01", "01"), domain.ErrInvalidFiscalNumber)
	assert.ErrorIs(t, ncf.ValidPrefix("B01", "09"), domain.ErrInvalidFiscalNumber)
}
