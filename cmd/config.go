package cmd

import (
	"fmt"

	"eduxctl/pkg/config"
	"eduxctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage eduxctl configuration",
	Long:  "View or edit your local configuration settings (like the Edux address or the theme color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		baseURL, _ := cmd.Flags().GetString("set-base-url")
		color, _ := cmd.Flags().GetString("set-color")
		cookieFile, _ := cmd.Flags().GetString("set-cookie-file")
		show, _ := cmd.Flags().GetBool("show")

		if show {
			tui.ViewConfig(tui.NewPrinter(cmd.OutOrStdout()), cfg)
			return nil
		}

		if baseURL == "" && color == "" && cookieFile == "" {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if baseURL != "" {
			if err := tui.ValidateBaseURL(baseURL); err != nil {
				return err
			}
			cfg.BaseURL = baseURL
		}
		if color != "" {
			cfg.AccentColor = color
		}
		if cookieFile != "" {
			cfg.CookieFile = cookieFile
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration saved.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-base-url", "", "Set the Edux address")
	configCmd.Flags().String("set-color", "", "Set the accent color (ANSI number or #RRGGBB)")
	configCmd.Flags().String("set-cookie-file", "", "Set the default cookie file")
	configCmd.Flags().Bool("show", false, "Print the current configuration")
}
