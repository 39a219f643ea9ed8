package cmd

import (
	"fmt"
	"strings"

	"eduxctl/pkg/edux"

	"github.com/spf13/cobra"
)

var showCookie bool

var cookieCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Store the Edux session cookie",
	Long: `Ask for the name and value of the Edux session cookie and write it to the cookie file.
Copy both from the browser's developer tools while logged in to Edux.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		if showCookie {
			return runShowCookie(a)
		}
		return runCookie(a)
	},
}

func runShowCookie(a *app) error {
	cookies, err := edux.LoadCookieFile(a.opts.cookieFile)
	if err != nil {
		return err
	}
	names := edux.NewSession(cookies).Names()
	a.printer.Info(fmt.Sprintf("%s holds cookie %s", a.opts.cookieFile, strings.Join(names, ", ")))
	return nil
}

func runCookie(a *app) error {
	cookies, err := a.askCookie()
	if err != nil {
		return err
	}
	if err := edux.SaveCookieFile(a.opts.cookieFile, cookies); err != nil {
		return err
	}
	a.client = nil
	a.printer.Success(fmt.Sprintf("✅ Cookie saved to %s", a.opts.cookieFile))
	return nil
}

func init() {
	rootCmd.AddCommand(cookieCmd)
	cookieCmd.Flags().BoolVar(&showCookie, "show", false, "Print the name of the stored cookie")
}
