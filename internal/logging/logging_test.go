package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("LEDGE_LOG_LEVEL", "debug")
	t.Setenv("LEDGE_LOG_FORMAT", "json")
	t.Setenv("LEDGE_LOG_FILE", "/tmp/ledge.log")

	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/tmp/ledge.log", cfg.File)
}

func TestApplyEnvIgnoresBadFormat(t *testing.T) {
	t.Setenv("LEDGE_LOG_FORMAT", "xml")

	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, "console", cfg.Format)
}

func TestRotatorAppendsWithinLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledge.log")
	r, err := NewRotator(path, 1, 2, 1, false)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("one\n"))
	require.NoError(t, err)
	_, err = r.Write([]byte("two\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestRotatorRotatesAtSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledge.log")
	r, err := NewRotator(path, 1, 2, 1, false)
	require.NoError(t, err)
	defer r.Close()

	// two writes that together exceed 1MB force a rotation
	big := strings.Repeat("x", 700*1024)
	_, err = r.Write([]byte(big))
	require.NoError(t, err)
	_, err = r.Write([]byte(big))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 700*1024)
}
