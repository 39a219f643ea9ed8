package cmd

import (
	"context"

	"eduxctl/pkg/tui"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [terms...]",
	Short: "Show the classification tree of a course",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		return runTree(cmd.Context(), a, args)
	},
}

func runTree(ctx context.Context, a *app, args []string) error {
	r := a.resolver(args)
	course, err := a.selectCourse(ctx, r)
	if err != nil {
		return err
	}
	tree, err := a.tree(ctx, course)
	if err != nil {
		return err
	}
	a.warnUnused(r)

	a.printer.Info(tui.RenderTree(course, tree))
	return nil
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
