package batch

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes request-level failures. Row-level failures are never
// represented this way; they are carried as RowError data.
type Kind string

const (
	// KindValidation indicates malformed, missing, or empty input.
	KindValidation Kind = "VALIDATION"

	// KindNotFound indicates a batch with no surviving rows.
	KindNotFound Kind = "NOT_FOUND"

	// KindStorageUnavailable indicates the store could not be reached or
	// a connection could not be acquired.
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"

	// KindAllocationInvariant indicates the allocator computed a
	// non-positive identifier from a malformed storage response.
	KindAllocationInvariant Kind = "ALLOCATION_INVARIANT"

	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = "INTERNAL"
)

// Error is a request-level failure with a category the boundary layer
// maps to a status code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError wraps an underlying error with a kind and message.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err. Unclassified errors fall back to the
// keyword heuristic in Classify.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return Classify(err)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return kindIs(err, KindValidation) }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return kindIs(err, KindNotFound) }

// IsStorageUnavailable reports whether err is a connectivity failure.
func IsStorageUnavailable(err error) bool { return kindIs(err, KindStorageUnavailable) }

func kindIs(err error, kind Kind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// connectivityKeywords mark an error message as a storage problem.
var connectivityKeywords = []string{
	"database",
	"connection",
	"connect",
	"pool",
	"timeout",
	"timed out",
	"locked",
	"unavailable",
	"no such table",
}

// validationKeywords mark an error message as bad input.
var validationKeywords = []string{
	"invalid",
	"malformed",
	"must be",
	"required",
	"empty",
	"cannot be",
}

// Classify guesses a kind from an error's message. Best effort only:
// it inspects the text for connectivity and validation keywords and may
// misclassify. Used by the boundary layer for errors that escaped
// without a kind.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range connectivityKeywords {
		if strings.Contains(msg, kw) {
			return KindStorageUnavailable
		}
	}
	for _, kw := range validationKeywords {
		if strings.Contains(msg, kw) {
			return KindValidation
		}
	}
	return KindInternal
}
