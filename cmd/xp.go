package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/xp"
)

var xpCmd = &cobra.Command{
	Use:   "xp",
	Short: "Show experience points and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		x, err := a.xp.Current()
		if err != nil {
			return err
		}

		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		faint := lipgloss.NewStyle().Faint(true)

		fmt.Println(title.Render(fmt.Sprintf("Level %d", x.Level)))
		fmt.Printf("%s  %s\n",
			renderXpBar(xp.ProgressInLevel(x.Points), xp.PointsPerLevel, 30),
			faint.Render(fmt.Sprintf("%d/%d to level %d", xp.ProgressInLevel(x.Points), xp.PointsPerLevel, x.Level+1)))
		fmt.Println(faint.Render(fmt.Sprintf("%d points total", x.Points)))
		return nil
	},
}

// renderXpBar draws a progress bar for the current level band.
func renderXpBar(progress, total, width int) string {
	filled := progress * width / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Render(bar)
}
