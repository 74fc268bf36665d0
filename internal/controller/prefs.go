package controller

import (
	"context"
	"sync"

	"github.com/stratizen/stratizen/internal/config"
	"github.com/stratizen/stratizen/internal/store"
)

// Preference topics on the controller's private hub.
const (
	topicTheme      = "theme"
	topicFontSize   = "font_size"
	topicFontFamily = "font_family"
)

// Prefs holds the theme and typography preferences as reactive state.
// Every setter persists through the config layer and notifies
// watchers; absent keys were already resolved to defaults at load.
type Prefs struct {
	mu   sync.RWMutex
	cfg  config.Config
	hub  *store.Hub
	save func(config.Config) error
}

// NewPrefs wraps a loaded config. save persists changes; pass
// config.Save for the real file, or a stub in tests.
func NewPrefs(cfg config.Config, save func(config.Config) error) *Prefs {
	return &Prefs{
		cfg:  config.Normalize(cfg),
		hub:  store.NewHub(),
		save: save,
	}
}

func (p *Prefs) Theme() config.ThemeMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Theme
}

func (p *Prefs) FontSize() config.FontSize {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.FontSize
}

func (p *Prefs) FontFamily() config.FontFamily {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.FontFamily
}

// Config returns a snapshot of the full preference set.
func (p *Prefs) Config() config.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

func (p *Prefs) SetTheme(mode config.ThemeMode) error {
	return p.set(topicTheme, func(c *config.Config) { c.Theme = mode })
}

func (p *Prefs) SetFontSize(size config.FontSize) error {
	return p.set(topicFontSize, func(c *config.Config) { c.FontSize = size })
}

func (p *Prefs) SetFontFamily(family config.FontFamily) error {
	return p.set(topicFontFamily, func(c *config.Config) { c.FontFamily = family })
}

func (p *Prefs) set(topic string, apply func(*config.Config)) error {
	p.mu.Lock()
	next := p.cfg
	apply(&next)
	next = config.Normalize(next)
	if err := p.save(next); err != nil {
		p.mu.Unlock()
		return err
	}
	p.cfg = next
	p.mu.Unlock()

	p.hub.Publish(topic)
	return nil
}

// WatchTheme streams the theme mode, starting with the current value.
func (p *Prefs) WatchTheme(ctx context.Context) <-chan config.ThemeMode {
	return store.Watch(ctx, p.hub, topicTheme, func() (config.ThemeMode, error) {
		return p.Theme(), nil
	})
}

// WatchFontSize streams the font size, starting with the current value.
func (p *Prefs) WatchFontSize(ctx context.Context) <-chan config.FontSize {
	return store.Watch(ctx, p.hub, topicFontSize, func() (config.FontSize, error) {
		return p.FontSize(), nil
	})
}

// WatchFontFamily streams the font family, starting with the current
// value.
func (p *Prefs) WatchFontFamily(ctx context.Context) <-chan config.FontFamily {
	return store.Watch(ctx, p.hub, topicFontFamily, func() (config.FontFamily, error) {
		return p.FontFamily(), nil
	})
}

// Close shuts down the watcher hub.
func (p *Prefs) Close() { p.hub.Close() }
