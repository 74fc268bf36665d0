package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/utils"
)

var (
	editTitle string
	editDesc  string
	editGroup string
	editAt    string
)

var editCmd = &cobra.Command{
	Use:   "edit [event-id]",
	Short: "Edit an existing event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event ID: %v", err)
		}

		if editTitle == "" && editDesc == "" && editGroup == "" && editAt == "" {
			return fmt.Errorf("nothing to update - specify at least one field to edit")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		existing, err := a.events.Get(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("event with ID %d not found", id)
		}

		e := *existing
		if editTitle != "" {
			e.Title = editTitle
		}
		if editDesc != "" {
			e.Description = editDesc
		}
		if editGroup != "" {
			e.Group = editGroup
		}
		if editAt != "" {
			when, err := utils.ParseFlexibleDate(editAt, a.cfg.Location())
			if err != nil {
				return fmt.Errorf("invalid --at date %q: %w", editAt, err)
			}
			e.Timestamp = when.UnixMilli()
		}

		updated := make(chan error, 1)
		if err := a.events.Update(e, func(err error) { updated <- err }); err != nil {
			return err
		}
		if err := <-updated; err != nil {
			return err
		}

		fmt.Printf("Event %d updated.\n", id)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "New description")
	editCmd.Flags().StringVarP(&editGroup, "group", "g", "", "New group")
	editCmd.Flags().StringVar(&editAt, "at", "", "New event time")
}
