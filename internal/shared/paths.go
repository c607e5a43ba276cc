package shared

import (
	"os"
	"path/filepath"
	"runtime"
)

// DatabaseFile is the name of the backing file inside the platform data directory.
const DatabaseFile = "events.db"

// DefaultDatabasePath returns the fixed per-platform location of the backing file.
//
// Falls back to the working directory when no home directory can be resolved.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DatabaseFile
	}

	switch runtime.GOOS {
	case "darwin", "ios":
		return filepath.Join(home, "Library", "LocalDatabase", DatabaseFile)
	case "windows":
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, "campus", DatabaseFile)
		}
		return filepath.Join(home, "campus", DatabaseFile)
	default:
		return filepath.Join(home, ".campus", DatabaseFile)
	}
}
