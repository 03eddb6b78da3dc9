package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
	assert.False(t, opts.Strict)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	content := "strict: true\ncolor: never\nlog_level: debug\nstore: out.db\nreport: out.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.Strict)
	assert.Equal(t, ColorNever, opts.Color)
	assert.Equal(t, slog.LevelDebug, opts.Level())
	assert.Equal(t, "out.db", opts.StorePath)
	assert.Equal(t, "out.yaml", opts.ReportPath)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty document", input: "", wantErr: false},
		{name: "bad color", input: "color: rainbow\n", wantErr: true},
		{name: "bad level", input: "log_level: loud\n", wantErr: true},
		{name: "malformed yaml", input: "strict: [\n", wantErr: true},
		{name: "always color", input: "color: always\n", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
