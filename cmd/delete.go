package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [event-id]",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event ID: %v", err)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// Fetch first so the undo hint can reconstruct the event.
		existing, err := a.events.Get(id)
		if err != nil {
			return err
		}

		deleted := make(chan error, 1)
		if err := a.events.Delete(id, func(err error) { deleted <- err }); err != nil {
			return err
		}
		if err := <-deleted; err != nil {
			return err
		}

		if existing == nil {
			fmt.Printf("Event %d was already gone.\n", id)
			return nil
		}

		when := time.UnixMilli(existing.Timestamp).In(a.cfg.Location())
		fmt.Printf("Deleted event %d (%s).\n", id, existing.Title)
		fmt.Printf("Undo: stratizen add %q --group %q --at %q --desc %q\n",
			existing.Title, existing.Group, when.Format("2006-01-02 15:04"), existing.Description)
		return nil
	},
}
