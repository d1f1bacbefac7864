// Package mocks provides test doubles for the ports interfaces.
package mocks

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// FileSystem is a thread-safe in-memory ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files    map[string][]byte
	modTimes map[string]time.Time
	reads    map[string]int
}

// NewFileSystem creates an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:    make(map[string][]byte),
		modTimes: make(map[string]time.Time),
		reads:    make(map[string]int),
	}
}

// AddFile adds a file.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
}

// ReadFile returns the file content or an error satisfying os.IsNotExist.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.reads[path]++
	content, ok := fs.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// SetModTime sets the modification time reported for path.
func (fs *FileSystem) SetModTime(path string, mod time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.modTimes[path] = mod
}

// Remove deletes a file.
func (fs *FileSystem) Remove(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.files, path)
	delete(fs.modTimes, path)
}

// ModTime returns the time set by SetModTime, or the zero time for a file
// that never had one.
func (fs *FileSystem) ModTime(path string) (time.Time, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if _, ok := fs.files[path]; !ok {
		return time.Time{}, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return fs.modTimes[path], nil
}

// Exists reports whether a file was added at path.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[path]
	return ok
}

// Reads returns how many times path was read.
func (fs *FileSystem) Reads(path string) int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.reads[path]
}

// String lists the stored paths, for failure messages.
func (fs *FileSystem) String() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	return fmt.Sprintf("mocks.FileSystem%v", paths)
}

var _ ports.FileSystem = (*FileSystem)(nil)
