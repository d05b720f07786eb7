package puzzle

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrResource      = errors.New("resource error")
	ErrGeneration    = errors.New("generation failure")
	ErrUnderfill     = errors.New("not enough words")
)

// Error is a pipeline failure tagged with its kind and the last stage reached.
type Error struct {
	Kind  error
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func configErrorf(stage Stage, format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Stage: stage, Err: fmt.Errorf(format, args...)}
}

func wrapError(kind error, stage Stage, err error) error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}
