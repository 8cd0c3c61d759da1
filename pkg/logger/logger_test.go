package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Output: &buf})

	c := l.Component("commit")
	c.Info().Int64("order_id", 3).Msg("orden de servicio confirmada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "commit", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(3), entry["order_id"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("ruido"))
}
