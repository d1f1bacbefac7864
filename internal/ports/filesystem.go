package ports

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileSystem is the read-only file access the app layer needs to load
// schema registries, bundle metadata and settings.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	ModTime(path string) (time.Time, error)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
