package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DescribesConfigKeys(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Chromic Configuration", doc["title"])

	raw := string(data)
	for _, key := range []string{"chrome_top", "default_width", "min_height", "home_page", "reassert_on_first_paint"} {
		assert.Contains(t, raw, `"`+key+`"`)
	}
}

func TestGenerateSchemaFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chromic")

	path, err := GenerateSchemaFile(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.schema.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
