package events

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestEmit_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(zerolog.New(&buf))

	m.Emit(AnalysisStarted, "analysis", map[string]interface{}{"date": "2025-06-15"})

	out := buf.String()
	assert.Contains(t, out, `"event_type":"ANALYSIS_STARTED"`)
	assert.Contains(t, out, `"module":"analysis"`)
	assert.Contains(t, out, `"date":"2025-06-15"`)
}

func TestEmitError_WrapsAsErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(zerolog.New(&buf))

	m.EmitError("analysis", errors.New("snapshot step failed"), map[string]interface{}{
		"date": "2025-06-15",
	})

	out := buf.String()
	assert.Contains(t, out, `"event_type":"ERROR_OCCURRED"`)
	assert.Contains(t, out, "snapshot step failed")
}
