package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidInput Kind = "INVALID_INPUT"
	KindInternal     Kind = "INTERNAL"
	KindUnavailable  Kind = "UNAVAILABLE"
	KindRateLimit    Kind = "RATE_LIMIT"
)

// PipelineError carries a classification and the stack captured where the
// failure entered the pipeline, so NATS handlers can log something useful.
type PipelineError struct {
	Kind    Kind
	Message string
	Err     error
	Stack   []byte
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func (e *PipelineError) StackTrace() []byte {
	return e.Stack
}

func New(kind Kind, message string, err error) *PipelineError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &PipelineError{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func NotFound(message string, err error) *PipelineError {
	return New(KindNotFound, message, err)
}

func InvalidInput(message string, err error) *PipelineError {
	return New(KindInvalidInput, message, err)
}

func Internal(message string, err error) *PipelineError {
	return New(KindInternal, message, err)
}

func Unavailable(message string, err error) *PipelineError {
	return New(KindUnavailable, message, err)
}

func RateLimit(message string, err error) *PipelineError {
	return New(KindRateLimit, message, err)
}

func IsKind(err error, kind Kind) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
