package release

import "github.com/indaco/kacl/internal/tui"

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// TUIPrompter implements Prompter using the tui package.
type TUIPrompter struct{}

// Confirm asks a yes/no question.
func (TUIPrompter) Confirm(title, description string) (bool, error) {
	return tui.Confirm(title, description)
}

// Seams replaced in tests.
var (
	newPrompter   = func() Prompter { return TUIPrompter{} }
	isInteractive = tui.IsInteractive
)
