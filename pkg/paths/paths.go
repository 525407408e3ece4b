// Package paths provides path handling for bub: XDG locations for the
// settings and log files, home and environment expansion of user supplied
// paths, and scope checks between directories.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/bub/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for bub
	EnvConfigDir = "BUB_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "bub"

	// SettingsFileName is the user settings file inside the config dir
	SettingsFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "bub.log"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	return "", errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
}

// ConfigDir returns bub's config directory. BUB_CONFIG_DIR wins, then
// XDG_CONFIG_HOME, then the platform default.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns bub's state directory, honoring XDG_STATE_HOME.
func StateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// SettingsFilePath returns the path of the user settings file
func SettingsFilePath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ or ~/ to the home directory. ~user forms
// are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := HomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Expand expands environment variables and a leading ~, then returns the
// cleaned absolute path. Relative results are resolved against the working
// directory.
func Expand(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := ExpandHome(os.ExpandEnv(path))
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %q absolute", path).
			WithDetail("path", path)
	}
	return filepath.Clean(abs), nil
}

// ExpandFrom is Expand with relative results resolved against base instead
// of the working directory.
func ExpandFrom(path, base string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := ExpandHome(os.ExpandEnv(path))
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(base, expanded)
	}
	return filepath.Clean(expanded), nil
}

// ReplaceHomeWithTilde shortens paths under the home directory for display
// and for saved descriptors.
func ReplaceHomeWithTilde(path string) string {
	home, err := HomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if IsWithin(home, path) {
		rel, err := filepath.Rel(home, path)
		if err == nil {
			return "~" + string(filepath.Separator) + rel
		}
	}
	return path
}

// IsWithin reports whether child is parent itself or lies below it. Both
// paths should be absolute and clean.
func IsWithin(parent, child string) bool {
	if parent == child {
		return true
	}
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
