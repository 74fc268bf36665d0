package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/utils"
)

var (
	listGroup   string
	listLimit   int
	listPage    int
	listFormat  string
	listNoColor bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events ordered by time",
	Long: `Examples:
	stratizen list                           # everything, day-bucketed
	stratizen list --group Class             # one group only
	stratizen list --format table            # table format
	stratizen list --format json             # machine-readable
	stratizen list --limit 20 --page 2       # pagination`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Location = a.cfg.Location()
		if listNoColor {
			renderConfig.Color = false
		}
		if listFormat != "" {
			renderConfig.Format = utils.OutputFormat(listFormat)
		}

		var events []event.Event
		if listGroup != "" {
			events, err = a.events.ByGroup(listGroup)
		} else {
			events, err = a.events.All()
		}
		if err != nil {
			return err
		}

		if listLimit <= 0 || listLimit > 1000 {
			listLimit = 50
		}
		pagination := utils.NewPagination(len(events), listLimit, listPage)
		start, end := pagination.Slice(len(events))

		list := &utils.EventList{
			Events:     events[start:end],
			Total:      len(events),
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
			Group:      listGroup,
		}

		renderer := utils.NewRenderer(renderConfig)
		output, err := renderer.RenderEvents(list)
		if err != nil {
			return err
		}
		fmt.Print(output)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listGroup, "group", "g", "", "Filter by group (exact match)")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum events per page")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().StringVar(&listFormat, "format", "default", "Output format: default, table, json, csv, compact, quiet")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colored output")
}
