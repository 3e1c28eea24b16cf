package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "stock-api", Output: &buf})

	comp := l.Component("movements")
	comp.Info().Str("reference", "APP-2026-000001").Msg("movimiento completado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stock-api", line["service"])
	assert.Equal(t, "movements", line["component"])
	assert.Equal(t, "APP-2026-000001", line["reference"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí se escribe")
	assert.NotZero(t, buf.Len())
}
