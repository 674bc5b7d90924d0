package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		layoutWidth, layoutHeight, layoutPanel = 0, 0, 0
		runScript, runSummary, runWatch = "", false, true
		schemaOutDir = ""
	})

	configPath := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"defaults", []string{"layout"}, []string{"1820x980", "1804", "846"}},
		{"with panel", []string{"layout", "--panel", "800"}, []string{"separator", "1004", "1002"}},
		{"panel clamped to minimum", []string{"layout", "--panel", "40"}, []string{"1704"}},
		{"custom size", []string{"layout", "--width", "1280", "--height", "800"}, []string{"1280x800", "1264", "666"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	t.Run("schema", func(t *testing.T) {
		out, err := executeCommand(t, "config", "schema")
		require.NoError(t, err)
		assert.Contains(t, out, "Chromic Configuration")
		assert.Contains(t, out, "chrome_top")
	})

	t.Run("schema written", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeCommand(t, "config", "schema", "--write", dir)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "config.schema.json"))
	})

	t.Run("show", func(t *testing.T) {
		out, err := executeCommand(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "layout.chrome_top")
		assert.Contains(t, out, "sidebar.default_width")
	})
}

func TestRunCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "session.jsonl")
	require.NoError(t, os.WriteFile(script, []byte(`{"id":"1","command":"tabs.create","args":{"url":"example.com"}}`+"\n"), 0o644))

	out, err := executeCommand(t, "run", "--watch=false", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, `"event":"tabs.sync"`)
	assert.Contains(t, out, `"id":"1","ok":true`)
}

func TestAboutCommand(t *testing.T) {
	out, err := executeCommand(t, "about")
	require.NoError(t, err)
	assert.Contains(t, out, "chromic")
}
