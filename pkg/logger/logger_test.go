package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"xplore/pkg/config"
)

func TestNew(t *testing.T) {
	log, err := New(&config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "shout"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"warning", false},
		{"error", false},
		{"fatal", false},
		{"disabled", false},
		{"DEBUG", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := parseLogLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "level %q", tt.input)
		} else {
			assert.NoError(t, err, "level %q", tt.input)
		}
	}
}

func TestTestLoggerCapturesMessages(t *testing.T) {
	log := NewTestLogger()

	log.Info("starting search")
	log.WarnWithFields("empty page", map[string]interface{}{"page": 3})
	log.WithField("keyword", "golang").Error("fetch failed")

	assert.True(t, log.HasMessage("INFO", "starting search"))

	warns := log.MessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, 3, warns[0].Fields["page"])

	errors := log.MessagesByLevel("ERROR")
	require.Len(t, errors, 1)
	assert.Equal(t, "golang", errors[0].Fields["keyword"])
}

func TestGetLoggerReturnsDefault(t *testing.T) {
	globalLogger = nil
	log := GetLogger()
	assert.NotNil(t, log)
}
