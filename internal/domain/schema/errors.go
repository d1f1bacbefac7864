package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel categories. Every typed error below matches exactly one via errors.Is.
var (
	ErrSchemaNotFound       = errors.New("schema not found")
	ErrDuplicateSchema      = errors.New("duplicate schema")
	ErrMissingParentSchema  = errors.New("parent schema not found")
	ErrMissingParentField   = errors.New("parent schema has no such field")
	ErrCyclicSchema         = errors.New("cyclic schema inheritance")
	ErrUnknownPostProcessor = errors.New("unknown post-processor")
	ErrInvalidPath          = errors.New("invalid generalized path")
	ErrInvalidDocument      = errors.New("invalid schema document")
)

// SchemaNotFoundError reports a lookup of a schema absent from the registry.
type SchemaNotFoundError struct {
	Name string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema %q not found", e.Name)
}

func (e *SchemaNotFoundError) Is(target error) bool { return target == ErrSchemaNotFound }

// DuplicateSchemaError reports two schemas registered under one name.
type DuplicateSchemaError struct {
	Name string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("schema %q defined more than once", e.Name)
}

func (e *DuplicateSchemaError) Is(target error) bool { return target == ErrDuplicateSchema }

// MissingParentSchemaError reports a from_schema_name that names no schema.
type MissingParentSchemaError struct {
	Schema string
	Field  string
	Parent string
}

func (e *MissingParentSchemaError) Error() string {
	return fmt.Sprintf("schema %q field %q inherits from missing schema %q", e.Schema, e.Field, e.Parent)
}

func (e *MissingParentSchemaError) Is(target error) bool { return target == ErrMissingParentSchema }

// MissingParentFieldError reports a parent schema without the referenced field.
type MissingParentFieldError struct {
	Schema string
	Field  string
	Parent string
}

func (e *MissingParentFieldError) Error() string {
	return fmt.Sprintf("schema %q field %q: schema %q has no field %q", e.Schema, e.Field, e.Parent, e.Field)
}

func (e *MissingParentFieldError) Is(target error) bool { return target == ErrMissingParentField }

// CyclicSchemaError reports a from_schema_name chain that never reaches a native row.
type CyclicSchemaError struct {
	Field string
	Chain []string
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("cyclic inheritance for field %q: %s", e.Field, strings.Join(e.Chain, " -> "))
}

func (e *CyclicSchemaError) Is(target error) bool { return target == ErrCyclicSchema }

// UnknownPostProcessorError reports a post-processor name with no implementation.
type UnknownPostProcessorError struct {
	Schema string
	Field  string
	Name   string
}

func (e *UnknownPostProcessorError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("unknown post-processor %q", e.Name)
	}
	return fmt.Sprintf("schema %q field %q: unknown post-processor %q", e.Schema, e.Field, e.Name)
}

func (e *UnknownPostProcessorError) Is(target error) bool { return target == ErrUnknownPostProcessor }

// InvalidPathError reports a generalized path that cannot be parsed.
type InvalidPathError struct {
	Schema string
	Field  string
	Path   string
	Err    error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("schema %q field %q: invalid path %q: %v", e.Schema, e.Field, e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }

// DocumentError reports a schema document that fails decoding or shape validation.
type DocumentError struct {
	Source string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid schema document: %v", e.Err)
	}
	return fmt.Sprintf("invalid schema document %s: %v", e.Source, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

func (e *DocumentError) Is(target error) bool { return target == ErrInvalidDocument }

// Per-field errors. These never abort an extraction; they are attached to
// the field they came from.

// FieldError wraps a failure evaluating one row.
type FieldError struct {
	Field string
	Path  string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (%s): %v", e.Field, e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NotIndexableError reports a key applied to a value that has no keys.
type NotIndexableError struct {
	Path  string
	Key   string
	Value any
	cause error
}

func (e *NotIndexableError) Error() string {
	at := e.Path
	if at == "" {
		at = "<root>"
	}
	return fmt.Sprintf("cannot look up %q in %s (%T): %v", e.Key, at, e.Value, e.cause)
}

func (e *NotIndexableError) Unwrap() error { return e.cause }

// NotSliceableError reports a slice applied to a value that is not a string or sequence.
type NotSliceableError struct {
	Value any
}

func (e *NotSliceableError) Error() string {
	return fmt.Sprintf("cannot slice %T", e.Value)
}

// ProcessError reports a post-processor that could not handle its input.
type ProcessError struct {
	Processor string
	Value     any
	Reason    string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: cannot format %v (%T): %s", e.Processor, e.Value, e.Value, e.Reason)
}
