package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/felixgeelhaar/bundlescope/internal/app"
	"github.com/felixgeelhaar/bundlescope/internal/domain/bundle"
	"github.com/felixgeelhaar/bundlescope/internal/domain/fetch"
	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
	"github.com/felixgeelhaar/bundlescope/internal/domain/version"
)

// Error codes for categorization.
const (
	ErrCodeFileNotFound         = "FILE_NOT_FOUND"
	ErrCodeUnknownState         = "UNKNOWN_STATE"
	ErrCodeUnknownEvent         = "UNKNOWN_EVENT"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeSchemaNotFound       = "SCHEMA_NOT_FOUND"
	ErrCodeSchemaInheritance    = "SCHEMA_INHERITANCE"
	ErrCodeUnknownPostProcessor = "UNKNOWN_POST_PROCESSOR"
	ErrCodeInvalidPath          = "INVALID_PATH"
	ErrCodeDocumentInvalid      = "DOCUMENT_INVALID"
	ErrCodeInvalidVersion       = "INVALID_VERSION"
	ErrCodeVersionMismatch      = "VERSION_MISMATCH"
	ErrCodeNoServerVersion      = "NO_SERVER_VERSION"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "UNKNOWN_STATE")
	Message    string // User-friendly error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// toUserError maps a domain error to a UserError. It returns nil for
// errors it does not recognise.
func toUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	ue := &UserError{Message: err.Error(), Underlying: err}

	var (
		pathErr  *fs.PathError
		docErr   *schema.DocumentError
		transErr *fetch.InvalidTransitionError
	)

	switch {
	case errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist):
		ue.Code = ErrCodeFileNotFound
		ue.Message = "file not found"
		ue.Context = pathErr.Path
		ue.Suggestion = "check the path passed on the command line"
	case errors.Is(err, bundle.ErrUnknownState):
		ue.Code = ErrCodeUnknownState
		ue.Suggestion = "known states: " + joinStates(bundle.AllStates())
	case errors.Is(err, fetch.ErrUnknownEvent):
		ue.Code = ErrCodeUnknownEvent
		ue.Suggestion = "known events: " + joinEvents(fetch.Events())
	case errors.As(err, &transErr):
		ue.Code = ErrCodeInvalidTransition
		ue.Suggestion = fmt.Sprintf("%q does not apply while the resource is %s", transErr.Event, transErr.From)
	case errors.Is(err, schema.ErrSchemaNotFound):
		ue.Code = ErrCodeSchemaNotFound
		ue.Suggestion = "pass --schemas with a document that defines it, or omit --name to use the default schema"
	case errors.Is(err, schema.ErrMissingParentSchema),
		errors.Is(err, schema.ErrMissingParentField),
		errors.Is(err, schema.ErrCyclicSchema),
		errors.Is(err, schema.ErrDuplicateSchema):
		ue.Code = ErrCodeSchemaInheritance
		ue.Suggestion = "every from_schema_name must name a schema that has a row with the same field"
	case errors.Is(err, schema.ErrUnknownPostProcessor):
		ue.Code = ErrCodeUnknownPostProcessor
		ue.Suggestion = "use duration, size, date or a [start:end] slice"
	case errors.Is(err, schema.ErrInvalidPath):
		ue.Code = ErrCodeInvalidPath
		ue.Suggestion = "paths are dot-separated keys with an optional trailing [start:end]"
	case errors.As(err, &docErr):
		ue.Code = ErrCodeDocumentInvalid
		ue.Message = "invalid schema document"
		ue.Context = docErr.Source
		ue.Suggestion = "the document needs a schemas list of {name, rows} entries"
	case errors.Is(err, version.ErrInvalidVersion):
		ue.Code = ErrCodeInvalidVersion
		ue.Suggestion = "use a semantic version such as " + version.ClientVersion
	case errors.Is(err, app.ErrNoServerVersion):
		ue.Code = ErrCodeNoServerVersion
		ue.Suggestion = "pass --server or set [server] version in the settings file"
	default:
		return nil
	}
	return ue
}

func joinStates(states []bundle.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func joinEvents(events []fetch.Event) string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
