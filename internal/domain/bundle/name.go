package bundle

import (
	"errors"
	"fmt"
	"regexp"
)

// Errors for bundle name validation.
var (
	ErrEmptyName   = errors.New("bundle name cannot be empty")
	ErrInvalidName = errors.New("bundle name contains invalid characters")
)

// namePattern matches the backend's bundle name rule.
var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\-]*$`)

// NamePattern returns the bundle name pattern as a string.
func NamePattern() string {
	return namePattern.String()
}

// ValidateName checks a bundle name against the backend rule.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must match %s", ErrInvalidName, name, namePattern)
	}
	return nil
}
