package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/pkg/logger"
)

func TestWithComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info").WithComponent("payments")
	log.Info().Str("payment_id", "p-1").Msg("pago aplicado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "payments", line["component"])
	assert.Equal(t, "p-1", line["payment_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNivel_FiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn")
	log.Info().Msg("no debe salir")
	assert.Empty(t, buf.String())

	log.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}
