package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"strings"
	"time"

	"eduxctl/pkg/config"
	"eduxctl/pkg/edux"
	"eduxctl/pkg/history"
	"eduxctl/pkg/logger"
	"eduxctl/pkg/resolve"
	"eduxctl/pkg/tui"

	"github.com/mattn/go-isatty"
)

// secretAsker is implemented by prompters that can hide an answer.
type secretAsker interface {
	AskSecret(question string) (string, error)
}

type appOptions struct {
	cfg        *config.AppConfig
	in         io.Reader
	out        io.Writer
	terminal   bool
	refresh    bool
	cacheDir   string
	cookieFile string
	log        *slog.Logger
}

// app carries everything a command needs for one run.
type app struct {
	opts       appOptions
	log        *slog.Logger
	printer    *tui.Printer
	prompter   resolve.Prompter
	history    *history.History
	client     *edux.Client
	reprompted bool
	// storedCookies is the cookie set as last read from or offered for the cookie file.
	storedCookies map[string]string
}

// current is closed by Execute so history survives errors and aborts.
var current *app

func newApp(opts appOptions) (*app, error) {
	histPath, err := edux.ExpandHome(opts.cfg.HistoryFile)
	if err != nil {
		return nil, err
	}
	h, err := history.Load(histPath)
	if err != nil {
		return nil, err
	}

	log := opts.log
	if log == nil {
		log = logger.Nop()
	}

	printer := tui.NewPrinter(opts.out)
	var prompter resolve.Prompter
	if opts.terminal {
		prompter = tui.NewFormPrompter(tui.GetTheme(), printer, h)
	} else {
		prompter = tui.NewLinePrompter(opts.in, opts.out, h)
	}

	return &app{
		opts:     opts,
		log:      log,
		printer:  printer,
		prompter: prompter,
		history:  h,
	}, nil
}

// setup builds the app from the config, the environment and the global flags.
func setup() (*app, error) {
	if current != nil {
		return current, nil
	}

	cfg, err := config.LoadEffective()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg.LogLevel, os.Stderr)

	cookieFile := cfg.CookieFile
	if cookieFileFlag != "" {
		cookieFile = cookieFileFlag
	}

	cacheDir, err := edux.DefaultCacheDir()
	if err != nil {
		log.Warn("course cache disabled", "error", err)
		cacheDir = ""
	}

	terminal := !plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)
	log.Debug("starting", "base_url", cfg.BaseURL, "cookie_file", cookieFile, "terminal", terminal)

	a, err := newApp(appOptions{
		cfg:        cfg,
		in:         os.Stdin,
		out:        os.Stdout,
		terminal:   terminal,
		refresh:    refresh,
		cacheDir:   cacheDir,
		cookieFile: cookieFile,
		log:        log,
	})
	if err != nil {
		return nil, err
	}
	current = a
	return a, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) close() {
	a.saveRotatedCookies()
	if err := a.history.Save(); err != nil {
		a.log.Warn("failed to save history", "error", err)
	}
}

// saveRotatedCookies offers to store the session when Edux changed it during
// the run, so the next run does not start with a stale cookie.
func (a *app) saveRotatedCookies() {
	if a.client == nil {
		return
	}
	cookies := a.client.Session().Cookies()
	if len(cookies) == 0 || maps.Equal(cookies, a.storedCookies) {
		return
	}

	save, err := a.prompter.Confirm(fmt.Sprintf("Edux refreshed the session cookie. Save it to %s?", a.opts.cookieFile))
	if err != nil {
		a.log.Debug("not saving refreshed cookie", "error", err)
		return
	}
	if !save {
		return
	}
	if err := a.client.SaveCookies(a.opts.cookieFile); err != nil {
		a.log.Warn("failed to save refreshed cookie", "error", err)
		return
	}
	a.storedCookies = cookies
	a.printer.Success(fmt.Sprintf("Cookie saved to %s", a.opts.cookieFile))
}

func (a *app) spin(title string, action func()) {
	tui.Spin(title, a.opts.terminal, action)
}

func (a *app) newClient(cookies map[string]string) (*edux.Client, error) {
	opts := edux.Options{
		BaseURL:  a.opts.cfg.BaseURL,
		Timeout:  time.Duration(a.opts.cfg.TimeoutSeconds) * time.Second,
		CacheDir: a.opts.cacheDir,
		Refresh:  a.opts.refresh,
		Logger:   a.log,
	}
	if cookies != nil {
		opts.Cookies = cookies
	} else {
		opts.CookieFile = a.opts.cookieFile
	}
	return edux.NewClient(opts)
}

// connect returns the client, asking for a cookie when the cookie file is unusable.
func (a *app) connect() (*edux.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	c, err := a.newClient(nil)
	if errors.Is(err, edux.ErrBadCookieConfig) {
		a.printer.Warn(fmt.Sprintf("No usable cookie: %v", err))
		return a.promptCookie()
	}
	if err != nil {
		return nil, err
	}
	a.client = c
	a.storedCookies = c.Session().Cookies()
	return c, nil
}

func (a *app) askSecret(question string) (string, error) {
	if s, ok := a.prompter.(secretAsker); ok {
		return s.AskSecret(question)
	}
	return a.prompter.Ask(question, nil)
}

// askCookie reads one cookie from the user.
func (a *app) askCookie() (map[string]string, error) {
	name, err := a.askSecret("Cookie name")
	if err != nil {
		return nil, err
	}
	value, err := a.askSecret("Cookie value")
	if err != nil {
		return nil, err
	}
	return map[string]string{strings.TrimSpace(name): strings.TrimSpace(value)}, nil
}

// promptCookie replaces the client with one using a cookie entered by the
// user, and offers to store it.
func (a *app) promptCookie() (*edux.Client, error) {
	cookies, err := a.askCookie()
	if err != nil {
		return nil, err
	}
	c, err := a.newClient(cookies)
	if err != nil {
		return nil, err
	}
	a.client = c
	a.storedCookies = c.Session().Cookies()

	save, err := a.prompter.Confirm(fmt.Sprintf("Save the cookie to %s?", a.opts.cookieFile))
	if err != nil {
		return nil, err
	}
	if save {
		if err := c.SaveCookies(a.opts.cookieFile); err != nil {
			return nil, err
		}
		a.printer.Success(fmt.Sprintf("Cookie saved to %s", a.opts.cookieFile))
	}
	return c, nil
}

// authed runs an authenticated request. A permission error the first time
// asks the user for a new cookie and retries once.
func (a *app) authed(fn func(c *edux.Client) error) error {
	c, err := a.connect()
	if err != nil {
		return err
	}

	err = fn(c)
	if !errors.Is(err, edux.ErrPermissionDenied) || a.reprompted {
		return err
	}
	a.reprompted = true
	a.log.Debug("permission denied, asking for a new cookie", "error", err)
	a.printer.Warn("Edux refused the request, the cookie is probably expired.")

	c, err = a.promptCookie()
	if err != nil {
		return err
	}
	return fn(c)
}

// courses returns the course list. An empty landing page is not fatal:
// the user is then asked for a course freely.
func (a *app) courses(ctx context.Context) ([]string, error) {
	c, err := a.connect()
	if err != nil {
		return nil, err
	}

	var courses []string
	a.spin("Fetching courses from Edux...", func() {
		courses, err = c.FetchCourses(ctx)
	})
	if errors.Is(err, edux.ErrEmptyResult) {
		a.log.Warn("no courses found, falling back to free input", "error", err)
		return nil, nil
	}
	return courses, err
}

func (a *app) tree(ctx context.Context, course string) (*edux.Node, error) {
	var tree *edux.Node
	err := a.authed(func(c *edux.Client) error {
		var err error
		a.spin(fmt.Sprintf("Fetching classification of %s...", course), func() {
			tree, err = c.FetchClassificationTree(ctx, course)
		})
		return err
	})
	return tree, err
}

func (a *app) form(ctx context.Context, course string, path []string) (*edux.Form, error) {
	var form *edux.Form
	err := a.authed(func(c *edux.Client) error {
		var err error
		a.spin("Fetching the score form...", func() {
			form, err = c.FetchForm(ctx, course, path)
		})
		return err
	})
	return form, err
}

func (a *app) submit(ctx context.Context, sel edux.Context, values map[string]string) error {
	return a.authed(func(c *edux.Client) error {
		var err error
		a.spin("Submitting the score form...", func() {
			err = c.SubmitForm(ctx, sel.Course, sel.Path, values)
		})
		if err == nil {
			a.log.Info("form submitted", "url", c.FormURL(sel.Course, sel.Path, false))
		}
		return err
	})
}

func (a *app) selectCourse(ctx context.Context, r *resolve.Resolver) (string, error) {
	courses, err := a.courses(ctx)
	if err != nil {
		return "", err
	}
	return r.Select(resolve.KindCourse, courses)
}

// selectPage resolves a course and a path down to a leaf of its classification.
func (a *app) selectPage(ctx context.Context, r *resolve.Resolver) (edux.Context, error) {
	course, err := a.selectCourse(ctx, r)
	if err != nil {
		return edux.Context{}, err
	}
	tree, err := a.tree(ctx, course)
	if err != nil {
		return edux.Context{}, err
	}
	path, err := r.SelectPath(tree)
	if err != nil {
		return edux.Context{}, err
	}
	return edux.Context{Course: course, Path: path}, nil
}

// selectColumn resolves the full context and returns the form it lives in.
func (a *app) selectColumn(ctx context.Context, r *resolve.Resolver) (edux.Context, *edux.Form, error) {
	sel, err := a.selectPage(ctx, r)
	if err != nil {
		return sel, nil, err
	}
	form, err := a.form(ctx, sel.Course, sel.Path)
	if err != nil {
		return sel, nil, err
	}

	columns := form.Columns()
	if len(columns) == 0 {
		return sel, nil, fmt.Errorf("form on %s has no editable columns", sel)
	}
	sel.Column, err = r.Select(resolve.KindColumn, columns)
	if err != nil {
		return sel, nil, err
	}
	return sel, form, nil
}

func (a *app) resolver(args []string) *resolve.Resolver {
	return resolve.New(args, a.prompter).WithLogger(a.log)
}

func (a *app) warnUnused(r *resolve.Resolver) {
	if rest := r.Remaining(); len(rest) > 0 {
		a.log.Debug("unused arguments", "args", rest)
	}
}
