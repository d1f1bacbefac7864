//go:build e2e

// Package framework provides the E2E test infrastructure for bundlescope.
package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment is an isolated working directory for one E2E test.
type Environment struct {
	t          *testing.T
	rootDir    string
	binaryPath string
}

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// findProjectRoot locates the project root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the bundlescope binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		root, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(os.TempDir(), "bundlescope-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/bundlescope")
		cmd.Dir = root

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = err
			t.Logf("Build stderr: %s", stderr.String())
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	return &Environment{
		t:          t,
		rootDir:    t.TempDir(),
		binaryPath: binary,
	}
}

// RootDir returns the path to the test root directory.
func (e *Environment) RootDir() string {
	return e.rootDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// Path returns the absolute path of name inside the environment.
func (e *Environment) Path(name string) string {
	return filepath.Join(e.rootDir, name)
}

// WriteFile writes content to a file in the test environment and returns its path.
func (e *Environment) WriteFile(name, content string) string {
	e.t.Helper()

	fullPath := e.Path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		e.t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// WriteSchemas writes a schema document named schemas.<ext>.
func (e *Environment) WriteSchemas(ext, content string) string {
	e.t.Helper()
	return e.WriteFile("schemas."+ext, content)
}

// WriteBundle writes a bundle metadata file named bundle.<ext>.
func (e *Environment) WriteBundle(ext, content string) string {
	e.t.Helper()
	return e.WriteFile("bundle."+ext, content)
}

// WriteSettings writes bundlescope.ini.
func (e *Environment) WriteSettings(content string) string {
	e.t.Helper()
	return e.WriteFile("bundlescope.ini", content)
}
