package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	Setup(0, &buf)

	logger := Get("test")
	logger.Info().Msg("hidden message")
	logger.Warn().Msg("visible message")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "visible message")
	assert.Contains(t, out, "component=test")
}
