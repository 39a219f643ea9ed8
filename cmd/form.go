package cmd

import (
	"context"

	"eduxctl/pkg/tui"

	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:   "form [terms...]",
	Short: "Show every field of a classification form",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		return runForm(cmd.Context(), a, args)
	},
}

func runForm(ctx context.Context, a *app, args []string) error {
	r := a.resolver(args)
	sel, err := a.selectPage(ctx, r)
	if err != nil {
		return err
	}
	form, err := a.form(ctx, sel.Course, sel.Path)
	if err != nil {
		return err
	}
	a.warnUnused(r)

	a.printer.Question(sel.String())
	if a.client != nil {
		a.printer.Info(a.client.FormURL(sel.Course, sel.Path, true))
	}
	tui.RenderForm(a.opts.out, form, "")
	return nil
}

func init() {
	rootCmd.AddCommand(formCmd)
}
