package zap

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWriterLogger(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := NewWriterLogger(&buf)

	log.Info("generate text start", zap.String("correlationId", "abc"))
	log.Error("model call failed")

	out := buf.String()
	assert.Contains(t, out, "[GENRELAY] INFO | ")
	assert.Contains(t, out, "generate text start")
	assert.Contains(t, out, `"correlationId": "abc"`)
	assert.Contains(t, out, "[GENRELAY] ERROR | ")
}

func TestNewLoggerProduction(t *testing.T) {
	log := NewLogger(ProductionMode)
	assert.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}
