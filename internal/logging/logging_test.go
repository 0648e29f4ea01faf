package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"fatal", zerolog.FatalLevel},
		{" Error ", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNewPlainFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewPlain("warn", &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("component", "scoring").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "component=scoring")
}

func TestForFileWritesPlainToFiles(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "run.log"))
	require.NoError(t, err)
	defer f.Close()

	log := ForFile("debug", f)
	log.Debug().Int("remaining", 7).Msg("pin down")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "pin down")
	assert.Contains(t, out, "remaining=7")
	assert.NotContains(t, out, "\x1b[")
}
