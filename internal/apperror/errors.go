package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies why a submission was rejected.
type Kind string

const (
	KindCount           Kind = "count"
	KindUnknownQuestion Kind = "unknown_question"
	KindInvalidOption   Kind = "invalid_option"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnauthenticated    = errors.New("learner id is required")
)

// ValidationError rejects a whole answer batch. It is never retried.
type ValidationError struct {
	Kind       Kind
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("validation error (%s): %s [question %s]", e.Kind, e.Message, e.QuestionID)
	}
	return fmt.Sprintf("validation error (%s): %s", e.Kind, e.Message)
}

func NewValidationError(kind Kind, questionID, message string) *ValidationError {
	return &ValidationError{Kind: kind, QuestionID: questionID, Message: message}
}

// StorageError wraps a failure of the catalog or persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// AsValidation returns the ValidationError carried by err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
