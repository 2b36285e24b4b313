// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pathutil provides small path helpers shared across stages.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading ~ with the current user's home directory.
// The path is returned unchanged when the home directory cannot be resolved.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
