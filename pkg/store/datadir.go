package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for greatcorp.
//
//   - macOS:   ~/Library/Application Support/greatcorp
//   - Linux:   $XDG_DATA_HOME/greatcorp (fallback ~/.local/share/greatcorp)
//   - Windows: %LOCALAPPDATA%\greatcorp (fallback %APPDATA%\greatcorp)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "greatcorp")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "greatcorp")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "greatcorp")
		}
		return filepath.Join(home, "greatcorp")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "greatcorp")
		}
		return filepath.Join(home, ".local", "share", "greatcorp")
	}
}

// ResolveDataDir picks the data directory: an explicit flag wins, then the
// environment, then the OS default.
func ResolveDataDir(flagDir, envDir string) string {
	switch {
	case flagDir != "":
		return flagDir
	case envDir != "":
		return envDir
	default:
		return DefaultDataDir()
	}
}
