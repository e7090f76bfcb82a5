package tui

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// runForm runs an interactive form. Tests replace it.
var runForm = func(f *huh.Form) error {
	return f.Run()
}

// Confirm asks a yes/no question. It defaults to "No".
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(currentThemeOrDefault())

	if err := runForm(form); err != nil {
		return false, err
	}
	return confirmed, nil
}

// runSpinner shows a spinner while action runs. Tests replace it.
var runSpinner = func(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

// WithSpinner runs action, showing a spinner with title while it works
// when the session is interactive.
func WithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}
	return runSpinner(ctx, title, action)
}
