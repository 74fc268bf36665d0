package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/notify"
	"github.com/stratizen/stratizen/internal/schedule"
	"github.com/stratizen/stratizen/internal/ui"
)

// tuiCmd launches the Bubble Tea dashboard. The reminder scheduler
// runs alongside it for as long as the dashboard is open.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if a.cfg.Reminder.Enabled && os.Getenv("STRATIZEN_NO_REMINDER") != "1" {
			loc := a.cfg.Location()
			go schedule.Run(ctx, a.events.WatchAll(ctx), a.cfg, func(e event.Event) {
				title, body := notify.FormatReminder(e.Title, e.Group,
					time.UnixMilli(e.Timestamp).In(loc).Format("15:04"))
				_ = notify.Info(title, body)
			})
		}

		return ui.Run(ctx, a.events, a.xp, a.prefs, a.cfg)
	},
}
