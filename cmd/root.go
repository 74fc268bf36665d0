package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/config"
	"github.com/stratizen/stratizen/internal/controller"
	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/store"
	"github.com/stratizen/stratizen/internal/version"
	"github.com/stratizen/stratizen/internal/xp"
)

var rootCmd = &cobra.Command{
	Use:     "stratizen",
	Short:   "Student event manager with XP",
	Version: version.GetVersion(),
}

func Execute() error { return rootCmd.Execute() }

var dbPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (default ~/.local/share/stratizen/stratizen.db)")
	rootCmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd, xpCmd, themeCmd, tuiCmd)
}

// app is the wired-up core handed to each command run: one store
// opened at startup, repositories injected into controllers, closed
// when the command finishes.
type app struct {
	cfg    config.Config
	st     *store.Store
	events *controller.Events
	xp     *controller.XP
	prefs  *controller.Prefs
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		st:     st,
		events: controller.NewEvents(event.NewRepository(st)),
		xp:     controller.NewXP(xp.NewRepository(st)),
		prefs:  controller.NewPrefs(cfg, config.Save),
	}, nil
}

// Close drains the controllers before releasing the store so no
// in-flight write loses its handle.
func (a *app) Close() {
	a.events.Close()
	a.xp.Close()
	a.prefs.Close()
	_ = a.st.Close()
}
