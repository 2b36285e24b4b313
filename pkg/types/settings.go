package types

// SettingsOrigin identifies which candidate source produced the effective
// settings.
type SettingsOrigin string

const (
	// OriginEnv means the file named by the settings environment variable.
	OriginEnv SettingsOrigin = "env"
	// OriginCwd means settings.json in the working directory.
	OriginCwd SettingsOrigin = "cwd"
	// OriginBuiltin means no settings file was found and the built-in
	// defaults apply.
	OriginBuiltin SettingsOrigin = "builtin"
)

// SettingsSource records where the effective settings were loaded from. It is
// diagnostic only; behavior never depends on it.
type SettingsSource struct {
	Origin SettingsOrigin `json:"origin" yaml:"origin"`

	// Path is the settings file for file-backed origins, empty for builtin.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Settings is the output-format configuration for one request. It is
// immutable once resolved and threaded explicitly into the components that
// need it; there is no ambient settings state.
type Settings struct {
	// DefaultOutputFormat is the format substituted for a "default" request.
	// Always FormatMMD or FormatMD.
	DefaultOutputFormat OutputFormat `json:"default_output_format" yaml:"default_output_format"`

	// RewriteTags renders \tag{X} equation labels as visible text during
	// Markdown conversion.
	RewriteTags bool `json:"md_rewrite_tags" yaml:"md_rewrite_tags"`

	// FixSizedDelimiters normalizes brace-escaped sized delimiters that
	// strict renderers reject.
	FixSizedDelimiters bool `json:"md_fix_sized_delimiters" yaml:"md_fix_sized_delimiters"`

	// Source records which candidate produced this record.
	Source SettingsSource `json:"source" yaml:"source"`
}

// DefaultSettings returns the built-in fallback configuration.
func DefaultSettings() Settings {
	return Settings{
		DefaultOutputFormat: FormatMMD,
		RewriteTags:         true,
		FixSizedDelimiters:  true,
		Source:              SettingsSource{Origin: OriginBuiltin},
	}
}
