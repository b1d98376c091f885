package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig Kind = "invalid_config"
	NotFound      Kind = "not_found"
	IOFailure     Kind = "io_failure"
	Internal      Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// ExitCode maps an error to the process exit status: 0 for nil, 2 for
// configuration problems detected before any work, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case InvalidConfig, NotFound:
		return 2
	default:
		return 1
	}
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("ERROR: Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("ERROR: SOURCE directory does not exist: %s", appErr.Path)
	case IOFailure:
		if appErr.Op == "mkdir" {
			return fmt.Sprintf("ERROR: Unable to create directory: %s", appErr.Path)
		}
		return fmt.Sprintf("ERROR: I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("ERROR: Unexpected error: %v", appErr.Err)
	}
}
