package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRotator_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 1, 2, 0, false)
	require.NoError(t, err)
	defer r.Close()

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	r.maxSize = 64

	line := []byte(strings.Repeat("x", 40) + "\n")
	for range 6 {
		_, err := r.Write(line)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), LogFileName+".") {
			backups++
		}
	}
	assert.Equal(t, 2, backups)

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Equal(t, line, data)
}

func TestLogRotator_Compress(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(dir, 1, 0, 0, true)
	require.NoError(t, err)
	defer r.Close()
	r.maxSize = 10

	_, err = r.Write([]byte("first line\n"))
	require.NoError(t, err)
	_, err = r.Write([]byte("second line\n"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, LogFileName+".*.gz"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
