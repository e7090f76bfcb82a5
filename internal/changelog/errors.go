package changelog

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural is matched by every StructuralError.
	ErrStructural = errors.New("structural error")

	// ErrCommand is matched by every CommandError.
	ErrCommand = errors.New("command error")
)

// StructuralError reports input that cannot be turned into a Document:
// duplicate versions, stray comments, links to unknown versions and the
// like. It always aborts loading, whatever the ignore-invalid setting.
type StructuralError struct {
	Location Location
	Msg      string
	Err      error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s %s", e.Location, e.Msg)
}

// Unwrap returns the underlying cause, e.g. semver.ErrInvalidVersion.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStructural) match any StructuralError.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

func structuralf(loc Location, format string, args ...any) *StructuralError {
	return &StructuralError{Location: loc, Msg: fmt.Sprintf(format, args...)}
}

// CommandError reports a mutation that could not be carried out.
// The Document is left unchanged.
type CommandError struct {
	Msg string
}

func (e *CommandError) Error() string {
	return e.Msg
}

// Is lets errors.Is(err, ErrCommand) match any CommandError.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommand
}

func commandf(format string, args ...any) *CommandError {
	return &CommandError{Msg: fmt.Sprintf(format, args...)}
}
