//go:build e2e

package framework

import (
	"strings"
	"testing"
)

// AssertSuccess asserts that the command succeeded.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Errorf("Expected command to succeed, got exit code %d\nStdout: %s\nStderr: %s",
			r.ExitCode, r.Stdout, r.Stderr)
	}
}

// AssertFailed asserts that the command failed.
func AssertFailed(t *testing.T, r *Result) {
	t.Helper()
	if r.Success() {
		t.Errorf("Expected command to fail, but it succeeded\nStdout: %s", r.Stdout)
	}
}

// AssertStdoutContains asserts that stdout contains every expected substring.
func AssertStdoutContains(t *testing.T, r *Result, expected ...string) {
	t.Helper()
	for _, s := range expected {
		if !strings.Contains(r.Stdout, s) {
			t.Errorf("Expected stdout to contain %q, but got:\n%s", s, r.Stdout)
		}
	}
}

// AssertStderrContains asserts that stderr contains the expected substring.
func AssertStderrContains(t *testing.T, r *Result, expected string) {
	t.Helper()
	if !strings.Contains(r.Stderr, expected) {
		t.Errorf("Expected stderr to contain %q, but got:\n%s", expected, r.Stderr)
	}
}
