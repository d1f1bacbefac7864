// Package version holds the client version and checks it against a server.
package version

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ClientVersion is the server release this client vocabulary tracks.
const ClientVersion = "1.7.0"

// ErrInvalidVersion is returned for version strings that are not semantic versions.
var ErrInvalidVersion = errors.New("invalid version")

// Compatibility describes how a server version relates to ClientVersion.
type Compatibility string

const (
	// CompatibilityExact means the server runs the same release.
	CompatibilityExact Compatibility = "exact"
	// CompatibilityNewerServer means the server is ahead within the same major line.
	CompatibilityNewerServer Compatibility = "newer-server"
	// CompatibilityOlderServer means the server is behind the client's minor baseline.
	CompatibilityOlderServer Compatibility = "older-server"
	// CompatibilityIncompatible means the major versions differ.
	CompatibilityIncompatible Compatibility = "incompatible"
)

// OK reports whether the client vocabulary can be used against the server.
func (c Compatibility) OK() bool {
	return c == CompatibilityExact || c == CompatibilityNewerServer
}

// Check is the result of comparing a server version with ClientVersion.
type Check struct {
	Client        string
	Server        string
	Compatibility Compatibility
}

// String returns a one-line summary.
func (c Check) String() string {
	return fmt.Sprintf("client %s, server %s: %s", c.Client, c.Server, c.Compatibility)
}

// Normalize returns v in the canonical "vMAJOR.MINOR.PATCH" form.
func Normalize(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, strings.TrimPrefix(v, "v"))
	}
	return semver.Canonical(v), nil
}

// CheckServer compares server against ClientVersion.
func CheckServer(server string) (Check, error) {
	return Compare(ClientVersion, server)
}

// Compare compares a client and a server version. The server is usable when
// it shares the client's major version and is not behind its minor release.
func Compare(client, server string) (Check, error) {
	cv, err := Normalize(client)
	if err != nil {
		return Check{}, fmt.Errorf("client version: %w", err)
	}
	sv, err := Normalize(server)
	if err != nil {
		return Check{}, fmt.Errorf("server version: %w", err)
	}

	check := Check{
		Client: strings.TrimPrefix(cv, "v"),
		Server: strings.TrimPrefix(sv, "v"),
	}

	switch {
	case semver.Major(cv) != semver.Major(sv):
		check.Compatibility = CompatibilityIncompatible
	case semver.Compare(sv, cv) == 0:
		check.Compatibility = CompatibilityExact
	case semver.Compare(semver.MajorMinor(sv), semver.MajorMinor(cv)) < 0:
		check.Compatibility = CompatibilityOlderServer
	default:
		check.Compatibility = CompatibilityNewerServer
	}
	return check, nil
}
