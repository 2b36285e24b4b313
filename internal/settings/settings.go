// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings resolves output-format configuration from an ordered set
// of candidate sources: the file named by the NOUGAT_MCP_SETTINGS environment
// variable, then settings.json in the working directory, then built-in
// defaults. The first candidate that exists wins in full; there is no
// field-level merging across sources. Fields a file leaves out take the
// built-in default value.
package settings

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/svretina/nougat-mcp/internal/pathutil"
	"github.com/svretina/nougat-mcp/pkg/types"
)

const (
	// EnvVar names the environment variable holding a settings file path
	// that overrides the working-directory lookup.
	EnvVar = "NOUGAT_MCP_SETTINGS"

	// DefaultFilename is the settings file looked up in the working directory.
	DefaultFilename = "settings.json"

	// namespaceKey is an optional top-level object wrapping the settings, so
	// one settings.json can be shared with other tools.
	namespaceKey = "nougat_mcp"
)

// Resolve loads the effective settings. A file that exists but cannot be
// parsed is a *types.ConfigError, never a silent fallback; a candidate that
// simply does not exist is skipped.
func Resolve() (types.Settings, error) {
	if envPath := os.Getenv(EnvVar); envPath != "" {
		path := pathutil.ExpandUser(envPath)
		if _, err := os.Stat(path); err == nil {
			return loadFile(path, types.OriginEnv)
		} else if !os.IsNotExist(err) {
			return types.Settings{}, &types.ConfigError{Path: path, Err: err}
		}
	}

	cwdPath := DefaultFilename
	if wd, err := os.Getwd(); err == nil {
		cwdPath = filepath.Join(wd, DefaultFilename)
	}
	if _, err := os.Stat(cwdPath); err == nil {
		return loadFile(cwdPath, types.OriginCwd)
	}

	return types.DefaultSettings(), nil
}

// loadFile parses one JSON settings file. Structurally malformed content is a
// ConfigError naming the path. A field carrying the wrong type or a value
// outside the allowed set falls back to that field's built-in default, which
// matches how absent fields behave.
func loadFile(path string, origin types.SettingsOrigin) (types.Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return types.Settings{}, &types.ConfigError{Path: path, Err: err}
	}
	if sub := v.Sub(namespaceKey); sub != nil {
		v = sub
	}

	s := types.DefaultSettings()
	s.Source = types.SettingsSource{Origin: origin, Path: path}

	if raw, ok := v.Get("default_output_format").(string); ok {
		if f := types.OutputFormat(raw); f == types.FormatMMD || f == types.FormatMD {
			s.DefaultOutputFormat = f
		}
	}
	s.RewriteTags = boolOr(v.Get("md_rewrite_tags"), s.RewriteTags)
	s.FixSizedDelimiters = boolOr(v.Get("md_fix_sized_delimiters"), s.FixSizedDelimiters)

	return s, nil
}

// boolOr returns raw when it is an actual boolean, fallback otherwise.
func boolOr(raw any, fallback bool) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	return fallback
}
