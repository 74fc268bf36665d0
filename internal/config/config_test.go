package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ThemeSystem, cfg.Theme)
	assert.Equal(t, FontMedium, cfg.FontSize)
	assert.Equal(t, FamilyDefault, cfg.FontFamily)
	assert.True(t, cfg.Reminder.Enabled)
}

func TestSaveToLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Theme = ThemeDark
	cfg.FontSize = FontLarge
	cfg.FontFamily = FamilyAlice
	cfg.Reminder.LeadMinutes = 15
	require.NoError(t, SaveTo(path, cfg))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got.Theme)
	assert.Equal(t, FontLarge, got.FontSize)
	assert.Equal(t, FamilyAlice, got.FontFamily)
	assert.Equal(t, 15, got.Reminder.LeadMinutes)
}

func TestNormalize_FoldsUnknownValues(t *testing.T) {
	cfg := Default()
	cfg.Theme = ThemeMode("neon")
	cfg.FontSize = FontSize("huge")
	cfg.FontFamily = FontFamily("comic-sans")

	cfg = Normalize(cfg)
	assert.Equal(t, ThemeSystem, cfg.Theme)
	assert.Equal(t, FontMedium, cfg.FontSize)
	assert.Equal(t, FamilyDefault, cfg.FontFamily)
}

func TestNormalize_IsCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Theme = ThemeMode("DARK")
	cfg.FontSize = FontSize("Small")

	cfg = Normalize(cfg)
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, FontSmall, cfg.FontSize)
}
