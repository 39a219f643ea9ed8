package resolve

import "errors"

// ErrAborted is returned by a Prompter when input ends or the user interrupts.
// The session terminates when it is seen.
var ErrAborted = errors.New("input aborted")

// ErrInvalidInput marks an answer outside the allowed set. Prompters handle it
// by asking again; it never leaves a Prompter.
var ErrInvalidInput = errors.New("invalid option")

// Prompter asks the user questions. Implementations loop until the answer is
// valid: non-empty and, when options is not empty, one of options.
type Prompter interface {
	Ask(question string, options []string) (string, error)
	Confirm(question string) (bool, error)
	Warn(msg string)
}

// Validate reports whether answer is acceptable for the given options.
func Validate(answer string, options []string) error {
	if answer == "" {
		return ErrInvalidInput
	}
	if len(options) == 0 {
		return nil
	}
	for _, o := range options {
		if o == answer {
			return nil
		}
	}
	return ErrInvalidInput
}
