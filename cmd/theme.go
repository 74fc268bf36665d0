package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratizen/stratizen/internal/config"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change theme and typography preferences",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("theme:       %s\n", a.prefs.Theme())
		fmt.Printf("font size:   %s\n", a.prefs.FontSize())
		fmt.Printf("font family: %s\n", a.prefs.FontFamily())
		return nil
	},
}

var (
	themeMode  string
	fontSize   string
	fontFamily string
)

var themeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences (persisted across restarts)",
	Long: `Examples:
	stratizen theme set --mode dark
	stratizen theme set --font-size large --font-family alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if themeMode == "" && fontSize == "" && fontFamily == "" {
			return fmt.Errorf("nothing to set - specify --mode, --font-size or --font-family")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if themeMode != "" {
			if err := a.prefs.SetTheme(config.ThemeMode(themeMode)); err != nil {
				return err
			}
		}
		if fontSize != "" {
			if err := a.prefs.SetFontSize(config.FontSize(fontSize)); err != nil {
				return err
			}
		}
		if fontFamily != "" {
			if err := a.prefs.SetFontFamily(config.FontFamily(fontFamily)); err != nil {
				return err
			}
		}

		fmt.Printf("Saved: theme=%s font_size=%s font_family=%s\n",
			a.prefs.Theme(), a.prefs.FontSize(), a.prefs.FontFamily())
		return nil
	},
}

func init() {
	themeSetCmd.Flags().StringVar(&themeMode, "mode", "", "Theme mode: light|dark|system")
	themeSetCmd.Flags().StringVar(&fontSize, "font-size", "", "Font size: small|medium|large")
	themeSetCmd.Flags().StringVar(&fontFamily, "font-family", "", "Font family: default|alice")
	themeCmd.AddCommand(themeGetCmd, themeSetCmd)
}
