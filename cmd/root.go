package cmd

import (
	"errors"
	"fmt"
	"os"

	"eduxctl/pkg/resolve"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	cookieFileFlag string
	plain          bool
	refresh        bool
	verbose        bool

	setValue  string
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   "eduxctl [terms...]",
	Short: "A CLI for viewing and editing Edux classification",
	Long: `eduxctl reads and edits scores in the classification of courses on Edux.

Any terms given are matched against the course, the classification path and the
column; everything they do not pin down is asked for interactively.`,
	Example: `  eduxctl BI-3DT fulltime exam points
  eduxctl bi-3dt exam points --set 12`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("set") {
			return runSet(cmd.Context(), a, args, &setValue, !assumeYes)
		}
		return runShow(cmd.Context(), a, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if current != nil {
		current.close()
	}
	if err != nil {
		if errors.Is(err, resolve.ErrAborted) || errors.Is(err, huh.ErrUserAborted) {
			os.Exit(0)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cookieFileFlag, "cookie-file", "", "Cookie file to use instead of the configured one")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Use line prompts even on a terminal")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Ignore the cached course list")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.Flags().StringVar(&setValue, "set", "", "Set the selected column to this value")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Submit without asking for confirmation")
}
