package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllCategoriesLog tests that every category writes when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(CloseAll)

	require.NoError(t, Initialize(dir, Settings{DebugMode: true, Level: "debug"}))

	categories := []Category{
		CategoryBoot,
		CategorySource,
		CategoryPlayback,
		CategoryProgress,
		CategoryWatch,
		CategoryUI,
	}
	for _, cat := range categories {
		assert.True(t, IsCategoryEnabled(cat), "category %s should be enabled", cat)
		Get(cat).Info("test info message for %s", cat)
	}
	Source("convenience source log")
	Playback("convenience playback log")

	CloseAll()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	content := string(data)
	for _, cat := range categories {
		assert.Contains(t, content, "test info message for "+string(cat))
	}
	assert.Contains(t, content, "convenience source log")
	assert.Contains(t, content, "convenience playback log")
}

func TestDisabledWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(CloseAll)

	require.NoError(t, Initialize(dir, Settings{DebugMode: false}))
	assert.False(t, IsCategoryEnabled(CategoryBoot))

	Get(CategoryUI).Error("should be dropped")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs dir must not be created in production mode")
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(CloseAll)

	require.NoError(t, Initialize(dir, Settings{
		DebugMode:  true,
		Level:      "info",
		Categories: map[string]bool{"ui": false},
	}))
	assert.False(t, IsCategoryEnabled(CategoryUI))
	assert.True(t, IsCategoryEnabled(CategoryWatch), "unlisted categories default to enabled")

	Get(CategoryUI).Info("hidden ui line")
	Get(CategoryWatch).Debug("below level")
	Get(CategoryWatch).With("path", "/tmp/x").Warn("visible watch line")
	CloseAll()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden ui line")
	assert.NotContains(t, string(data), "below level")
	assert.Contains(t, string(data), "visible watch line")
	assert.Contains(t, string(data), "/tmp/x")
}

func TestInitialize_RequiresDir(t *testing.T) {
	t.Cleanup(CloseAll)
	assert.Error(t, Initialize("", Settings{DebugMode: true}))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}
