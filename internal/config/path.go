// Package config resolves the expense tracker's settings: database and chart
// locations, chart size, viewer behavior, and logging.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references, so database and chart paths may use either form.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		path = underHome(path, "")
	case strings.HasPrefix(path, "~/"):
		path = underHome(path, path[2:])
	}
	return os.ExpandEnv(path)
}

// underHome joins rel onto the home directory. When the home directory is
// unknown, the path is left as written.
func underHome(path, rel string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rel)
}
