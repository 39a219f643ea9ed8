package tui

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"eduxctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Edux Address", "baseurl"),
						huh.NewOption("Set Cookie File", "cookie"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "baseurl":
			err = runSetBaseURLTUI(cfg)
		case "cookie":
			err = runSetCookieFileTUI(cfg)
		case "view":
			ViewConfig(NewPrinter(os.Stdout), cfg)
		}

		if err != nil {
			return err
		}
	}
}

// ViewConfig prints the saved configuration, showing defaults for unset values.
func ViewConfig(p *Printer, cfg *config.AppConfig) {
	defaults := config.Defaults()
	or := func(v, def string) string {
		if v == "" {
			return def + " (default)"
		}
		return v
	}

	p.Question("\n--- Current Configuration (~/.eduxctl.json) ---")
	p.Info(fmt.Sprintf("Edux Address: %s", or(cfg.BaseURL, defaults.BaseURL)))
	p.Info(fmt.Sprintf("Cookie File: %s", or(cfg.CookieFile, defaults.CookieFile)))
	p.Info(fmt.Sprintf("History File: %s", or(cfg.HistoryFile, defaults.HistoryFile)))
	p.Info(fmt.Sprintf("Log Level: %s", or(cfg.LogLevel, defaults.LogLevel)))
	p.Info(fmt.Sprintf("Accent Color: %s", or(cfg.AccentColor, defaults.AccentColor)))
	p.Info("")
}

// ValidateBaseURL accepts absolute http(s) addresses.
func ValidateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) address, e.g. https://edux.fit.cvut.cz/")
	}
	return nil
}

func runSetBaseURLTUI(cfg *config.AppConfig) error {
	input := cfg.BaseURL

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the Edux address").
				Description("Only change this when testing against a mirror of the portal.").
				Placeholder(config.Defaults().BaseURL).
				Value(&input).
				Validate(func(str string) error {
					if str == "" {
						return nil
					}
					return ValidateBaseURL(str)
				}),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	cfg.BaseURL = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Edux address saved: %s\n", orDefault(input, config.Defaults().BaseURL))))
	return nil
}

func runSetCookieFileTUI(cfg *config.AppConfig) error {
	input := cfg.CookieFile

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the cookie file path").
				Description("A leading ~ is expanded to your home directory.").
				Placeholder(config.Defaults().CookieFile).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	cfg.CookieFile = strings.TrimSpace(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Cookie file saved: %s\n", orDefault(cfg.CookieFile, config.Defaults().CookieFile))))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// accentPalette lists the preset accent colors offered in settings.
var accentPalette = []struct {
	Name  string
	Color string
}{
	{"Default Violet", "99"},
	{"CTU Blue", "#0065BD"},
	{"Passed Green", "42"},
	{"Credit Amber", "214"},
	{"Failed Red", "196"},
}

func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

// ValidateHexColor accepts #RRGGBB codes.
func ValidateHexColor(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range strings.ToLower(str[1:]) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}

func accentOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(accentPalette)+1)
	for _, c := range accentPalette {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", swatch(c.Color), c.Name), c.Color))
	}
	return append(opts, huh.NewOption("Other (#RRGGBB)", "custom"))
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Accent color").
				Description("Used for questions, the course tree and form borders.").
				Options(accentOptions()...).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Accent color as #RRGGBB").
					Placeholder("#0065BD").
					Value(&hexInput).
					Validate(ValidateHexColor),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(GetCustomTheme(cfg.AccentColor).Focused.Title.Render(fmt.Sprintf("\n✅ Accent color set to %s\n", cfg.AccentColor)))
	return nil
}
