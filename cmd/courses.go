package cmd

import (
	"context"

	"eduxctl/pkg/tui"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the courses on Edux",
	Long:  `List every course linked from the Edux landing page. The list is cached for 12 hours, use --refresh to fetch it again.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		return runCourses(cmd.Context(), a)
	},
}

func runCourses(ctx context.Context, a *app) error {
	courses, err := a.courses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		a.printer.Warn("No courses found on Edux.")
		return nil
	}
	tui.RenderCourses(a.opts.out, courses)
	return nil
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}
