// Package filesystem provides file system adapters.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// DefaultMaxFileSize caps documents read through RealFileSystem (64 MiB).
const DefaultMaxFileSize int64 = 64 << 20

// RealFileSystem implements ports.FileSystem on the local disk.
type RealFileSystem struct {
	maxSize int64
}

// NewRealFileSystem creates a RealFileSystem with DefaultMaxFileSize.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{maxSize: DefaultMaxFileSize}
}

// WithMaxSize returns a copy that refuses files larger than n bytes.
func (fs *RealFileSystem) WithMaxSize(n int64) *RealFileSystem {
	return &RealFileSystem{maxSize: n}
}

// ReadFile reads a whole file, expanding a leading ~/.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(ports.ExpandPath(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, fs.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > fs.maxSize {
		return nil, fmt.Errorf("%s is larger than %d bytes", path, fs.maxSize)
	}
	return data, nil
}

// Exists checks if a file or directory exists.
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(ports.ExpandPath(path))
	return err == nil
}

// ModTime returns the modification time of path.
func (fs *RealFileSystem) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(ports.ExpandPath(path))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

var _ ports.FileSystem = (*RealFileSystem)(nil)
