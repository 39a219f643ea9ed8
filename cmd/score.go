package cmd

import (
	"context"
	"fmt"
)

// runShow resolves a column and prints its current value.
func runShow(ctx context.Context, a *app, args []string) error {
	r := a.resolver(args)
	sel, form, err := a.selectColumn(ctx, r)
	if err != nil {
		return err
	}
	a.warnUnused(r)

	value, _ := form.Value(sel.Column)
	a.printer.Question(sel.String())
	a.printer.Info(value)
	return nil
}

// runSet resolves a column, changes it to value and submits the form. A nil
// value is asked for once the current one is shown. The form is fetched again
// afterwards because Edux gives no feedback.
func runSet(ctx context.Context, a *app, args []string, newValue *string, confirm bool) error {
	r := a.resolver(args)
	sel, form, err := a.selectColumn(ctx, r)
	if err != nil {
		return err
	}
	a.warnUnused(r)

	old, _ := form.Value(sel.Column)
	a.printer.Question(sel.String())

	var value string
	if newValue != nil {
		value = *newValue
	} else {
		a.printer.Info(fmt.Sprintf("Current value: %q", old))
		if value, err = a.prompter.Ask("What value do you want to set?", nil); err != nil {
			return err
		}
	}
	if old == value {
		a.printer.Info(fmt.Sprintf("Already %q, nothing to do.", value))
		return nil
	}

	if confirm {
		ok, err := a.prompter.Confirm(fmt.Sprintf("Change %s from %q to %q?", sel.Column, old, value))
		if err != nil {
			return err
		}
		if !ok {
			a.printer.Warn("Nothing changed.")
			return nil
		}
	}

	if err := form.Set(sel.Column, value); err != nil {
		return err
	}
	if err := a.submit(ctx, sel, form.Values()); err != nil {
		return fmt.Errorf("failed to submit %s: %w", sel, err)
	}

	updated, err := a.form(ctx, sel.Course, sel.Path)
	if err != nil {
		return fmt.Errorf("submitted, but failed to verify %s: %w", sel, err)
	}
	got, _ := updated.Value(sel.Column)
	if got != value {
		return fmt.Errorf("edux kept %s at %q after submitting %q", sel, got, value)
	}

	a.printer.Success(fmt.Sprintf("✅ %s changed from %q to %q", sel.Column, old, got))
	return nil
}
