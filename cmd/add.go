package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/controller"
	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/utils"
	"github.com/stratizen/stratizen/internal/xp"
)

var (
	addDesc  string
	addGroup string
	addAt    string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an event (earns 10 XP)",
	Long: `Examples:
	stratizen add "CS lecture" --group Class --at "tomorrow 09:00"
	stratizen add "Bus home" --group Transport --at "in 2h"
	stratizen add "Chess club" --group Clubs --at 2026-09-03 --desc "Bring board"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		loc := a.cfg.Location()
		when, err := utils.ParseFlexibleDate(addAt, loc)
		if err != nil {
			return fmt.Errorf("invalid --at date %q: %w", addAt, err)
		}

		e := event.Event{
			Title:       strings.Join(args, " "),
			Description: addDesc,
			Timestamp:   when.UnixMilli(),
			Group:       addGroup,
		}

		type insertResult struct {
			id  int64
			err error
		}
		inserted := make(chan insertResult, 1)
		if err := a.events.AddAndReturnID(e, func(id int64, err error) {
			inserted <- insertResult{id, err}
		}); err != nil {
			return err
		}
		res := <-inserted
		if res.err != nil {
			return res.err
		}

		before, err := a.xp.Current()
		if err != nil {
			before = xp.Default()
		}

		fmt.Printf("Saved event %d (%s, %s).\n", res.id, e.Title, when.In(loc).Format("Mon Jan 2 15:04"))
		awardAddBonus(a.xp, before, os.Stdout, os.Stderr)
		return nil
	},
}

// awardAddBonus grants the per-event XP and reports the outcome. The
// event is already saved at this point, so a store failure on the
// award becomes a warning rather than a command error.
func awardAddBonus(xpc *controller.XP, before xp.Xp, out, errOut io.Writer) {
	type awardResult struct {
		x   xp.Xp
		err error
	}
	res := make(chan awardResult, 1)
	if err := xpc.Award(xp.PointsPerEvent, func(x xp.Xp, err error) {
		res <- awardResult{x, err}
	}); err != nil {
		fmt.Fprintf(errOut, "warning: event saved but XP award failed: %v\n", err)
		return
	}

	r := <-res
	if r.err != nil {
		fmt.Fprintf(errOut, "warning: event saved but XP award failed: %v\n", r.err)
		return
	}
	fmt.Fprintf(out, "+%d XP — %d points, level %d.\n", xp.PointsPerEvent, r.x.Points, r.x.Level)
	if r.x.Level > before.Level {
		fmt.Fprintf(out, "Level up! You reached level %d.\n", r.x.Level)
	}
}

func init() {
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Event description")
	addCmd.Flags().StringVarP(&addGroup, "group", "g", event.DefaultGroup, "Group: General|School|Clubs|Class|Transport|MyEvents")
	addCmd.Flags().StringVar(&addAt, "at", "now", "Event time (supports: tomorrow 09:00, 'in 2h', 2026-09-03 14:00, etc.)")
}
