package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratizen/stratizen/internal/event"
)

func TestRenderTable_TruncatesDescriptionOnRunes(t *testing.T) {
	cfg := DefaultRenderConfig()
	cfg.Format = FormatTable
	cfg.Color = false
	cfg.Location = time.UTC
	r := NewRenderer(cfg)

	desc := strings.Repeat("é", 60)
	out, err := r.RenderEvents(&EventList{
		Events: []event.Event{{ID: 1, Title: "t", Description: desc, Timestamp: 0, Group: "General"}},
		Total:  1,
	})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 47)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 48))
}
