package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"eduxctl/pkg/history"
	"eduxctl/pkg/resolve"

	"github.com/charmbracelet/huh"
)

// maxListedOptions is the largest option set printed inline with a question.
const maxListedOptions = 8

// optionList renders options inline, in completion order.
func optionList(options []string) string {
	return "(" + strings.Join(resolve.NewCompleter(options).Candidates(), "/") + ")"
}

// FormPrompter asks questions with huh inputs. Tab accepts a suggestion.
type FormPrompter struct {
	theme   *huh.Theme
	printer *Printer
	history *history.History
}

// NewFormPrompter returns a prompter drawing huh forms with the given theme.
// The history may be nil.
func NewFormPrompter(theme *huh.Theme, p *Printer, h *history.History) *FormPrompter {
	return &FormPrompter{theme: theme, printer: p, history: h}
}

func (p *FormPrompter) Ask(question string, options []string) (string, error) {
	var answer string
	completer := resolve.NewCompleter(options)

	input := huh.NewInput().
		Title(question).
		Value(&answer).
		Validate(func(s string) error {
			if err := resolve.Validate(strings.TrimSpace(s), options); err != nil {
				if hint, ok := completer.Suggest(s); ok {
					return fmt.Errorf("invalid option, did you mean %s?", hint)
				}
				return errors.New("invalid option")
			}
			return nil
		})

	if len(options) > 0 {
		input = input.Suggestions(completer.Candidates())
		if len(options) < maxListedOptions {
			input = input.Description(optionList(options))
		} else {
			input = input.Description(fmt.Sprintf("%d options, press tab to complete", len(options)))
		}
	}
	if p.history != nil {
		if last, ok := p.history.Last(options); ok {
			input = input.Placeholder(last)
		}
	}

	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(p.theme).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", resolve.ErrAborted
		}
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if p.history != nil {
		p.history.Append(answer)
	}
	return answer, nil
}

// AskSecret asks for a value that is masked and kept out of the history.
func (p *FormPrompter) AskSecret(question string) (string, error) {
	var answer string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				EchoMode(huh.EchoModePassword).
				Value(&answer).
				Validate(func(s string) error {
					return resolve.Validate(strings.TrimSpace(s), nil)
				}),
		),
	).WithTheme(p.theme).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", resolve.ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (p *FormPrompter) Confirm(question string) (bool, error) {
	ok := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(p.theme).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, resolve.ErrAborted
		}
		return false, err
	}
	return ok, nil
}

func (p *FormPrompter) Warn(msg string) {
	p.printer.Warn(msg)
}

// LinePrompter asks questions line by line on plain streams. Typing a prefix
// followed by "?" lists the matching options.
type LinePrompter struct {
	in      *bufio.Reader
	out     io.Writer
	printer *Printer
	history *history.History
}

// NewLinePrompter returns a prompter reading answers from in. The history may be nil.
func NewLinePrompter(in io.Reader, out io.Writer, h *history.History) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out, printer: NewPrinter(out), history: h}
}

// readLine returns the next line without its terminator. End of input is
// reported as resolve.ErrAborted after printing "exit".
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.out, "exit")
			return "", resolve.ErrAborted
		}
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Ask(question string, options []string) (string, error) {
	completer := resolve.NewCompleter(options)

	prompt := question
	switch {
	case len(options) > 0 && len(options) < maxListedOptions:
		prompt += " " + optionList(options)
	case len(options) > 0:
		prompt += " (type a prefix and ? to list options)"
	}
	prompt += ": "

	for {
		fmt.Fprint(p.out, accentStyle.Render(prompt))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		if len(options) > 0 && strings.HasSuffix(line, "?") {
			matches := completer.Complete(strings.TrimSuffix(line, "?"))
			if len(matches) == 0 {
				p.printer.Warn("No matching options.")
			} else {
				p.printer.Info(strings.Join(matches, "  "))
			}
			continue
		}

		if err := resolve.Validate(line, options); err != nil {
			if line == "" {
				continue
			}
			p.printer.Error("Invalid option!")
			if hint, ok := completer.Suggest(line); ok {
				p.printer.Info(fmt.Sprintf("Did you mean %s?", hint))
			}
			continue
		}

		if p.history != nil {
			p.history.Append(line)
		}
		return line, nil
	}
}

// AskSecret asks for a non-empty value that is kept out of the history.
func (p *LinePrompter) AskSecret(question string) (string, error) {
	for {
		fmt.Fprint(p.out, accentStyle.Render(question+": "))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (p *LinePrompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprint(p.out, accentStyle.Render(question+" [Y/n]: "))
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.printer.Error("Invalid option!")
	}
}

func (p *LinePrompter) Warn(msg string) {
	p.printer.Warn(msg)
}
