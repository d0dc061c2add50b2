package dgii_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comercial-api/pkg/dgii"
)

func TestValidateTaxID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"rnc válido", "101010632", true},
		{"rnc con guiones", "1-01-01063-2", true},
		{"rnc dígito incorrecto", "101010631", false},
		{"cédula válida", "001-1391820-5", true},
		{"cédula dígito incorrecto", "00113918204", false},
		{"longitud inválida", "12345", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := dgii.ValidateTaxID(tc.input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "B01", dgii.Prefix(dgii.SeriesPrinted, dgii.TypeCreditoFiscal))
	assert.Equal(t, "E04", dgii.Prefix(dgii.SeriesElectronic, dgii.TypeNotaCredito))
	assert.True(t, dgii.IsValidDocumentType("02"))
	assert.False(t, dgii.IsValidDocumentType("05"))
}
