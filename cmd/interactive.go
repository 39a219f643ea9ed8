package cmd

import (
	"context"
	"errors"

	"eduxctl/pkg/resolve"
	"eduxctl/pkg/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to browse courses and read or edit scores interactively.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		return runMenu(cmd.Context(), a)
	},
}

func runMenu(ctx context.Context, a *app) error {
	for {
		action, err := tui.RunMenu()
		if errors.Is(err, huh.ErrUserAborted) || action == tui.ActionQuit {
			return nil
		}
		if err != nil {
			return err
		}

		switch action {
		case tui.ActionShow:
			err = runShow(ctx, a, nil)
		case tui.ActionSet:
			err = runSet(ctx, a, nil, nil, true)
		case tui.ActionForm:
			err = runForm(ctx, a, nil)
		case tui.ActionTree:
			err = runTree(ctx, a, nil)
		case tui.ActionCourses:
			err = runCourses(ctx, a)
		case tui.ActionCookie:
			err = runCookie(a)
		case tui.ActionConfig:
			err = tui.RunConfigTUI()
		}

		// An aborted question only leaves the current action
		if errors.Is(err, resolve.ErrAborted) || errors.Is(err, huh.ErrUserAborted) {
			continue
		}
		if err != nil {
			a.printer.Error(err.Error())
		}
	}
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
