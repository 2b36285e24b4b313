// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/svretina/nougat-mcp/pkg/types"
)

// fakeEngine implements Engine for testing. It returns canned markup or an
// error, depending on configuration.
type fakeEngine struct {
	output      string
	availErr    error
	transErr    error
	transcribed int
}

func (f *fakeEngine) Available() error { return f.availErr }

func (f *fakeEngine) Transcribe(ctx context.Context, pdfPath string) (string, error) {
	f.transcribed++
	if f.transErr != nil {
		return "", f.transErr
	}
	return f.output, nil
}

// stubSettings returns a SettingsFunc yielding a fixed record.
func stubSettings(s types.Settings) SettingsFunc {
	return func() (types.Settings, error) { return s, nil }
}

// setupPDF creates a temporary file with a .pdf extension and returns its path.
func setupPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2301.07041.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandle_InputValidation(t *testing.T) {
	tests := []struct {
		name       string
		path       func(t *testing.T) string
		format     string
		wantReason string
	}{
		{
			name:       "missing file",
			path:       func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.pdf") },
			format:     "mmd",
			wantReason: "file not found",
		},
		{
			name: "non-PDF extension",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "notes.txt")
				if err := os.WriteFile(p, []byte("text"), 0o644); err != nil {
					t.Fatal(err)
				}
				return p
			},
			format:     "mmd",
			wantReason: `extension ".txt"`,
		},
		{
			name:       "directory instead of file",
			path:       func(t *testing.T) string { return t.TempDir() },
			format:     "mmd",
			wantReason: "not a regular file",
		},
		{
			name:       "unknown format literal",
			path:       func(t *testing.T) string { return setupPDF(t) },
			format:     "html",
			wantReason: "output_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{output: "markup"}
			h := NewHandler(engine, stubSettings(types.DefaultSettings()), nil)

			_, err := h.Handle(context.Background(), tt.path(t), tt.format)

			var invalid *types.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("error %v is not an InvalidInputError", err)
			}
			if !strings.Contains(invalid.Error(), tt.wantReason) {
				t.Errorf("error %q does not mention %q", invalid.Error(), tt.wantReason)
			}
			if engine.transcribed != 0 {
				t.Errorf("engine invoked %d times despite invalid input", engine.transcribed)
			}
		})
	}
}

func TestHandle_EngineUnavailable(t *testing.T) {
	engine := &fakeEngine{
		availErr: &types.DependencyMissingError{Binary: "nougat", Err: errors.New("not found")},
	}
	h := NewHandler(engine, stubSettings(types.DefaultSettings()), nil)

	_, err := h.Handle(context.Background(), setupPDF(t), "mmd")

	var depErr *types.DependencyMissingError
	if !errors.As(err, &depErr) {
		t.Fatalf("error %v is not a DependencyMissingError", err)
	}
	if engine.transcribed != 0 {
		t.Error("engine invoked despite failed availability check")
	}
}

func TestHandle_SettingsErrorPropagates(t *testing.T) {
	engine := &fakeEngine{output: "markup"}
	resolve := func() (types.Settings, error) {
		return types.Settings{}, &types.ConfigError{Path: "/etc/broken.json", Err: errors.New("bad json")}
	}
	h := NewHandler(engine, resolve, nil)

	_, err := h.Handle(context.Background(), setupPDF(t), "default")

	var cfgErr *types.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %v is not a ConfigError", err)
	}
	if engine.transcribed != 0 {
		t.Error("engine invoked despite settings failure")
	}
}

func TestHandle_TranscribeErrorPropagates(t *testing.T) {
	engine := &fakeEngine{
		transErr: &types.OcrExecutionError{PDFPath: "x.pdf", Stderr: "boom"},
	}
	h := NewHandler(engine, stubSettings(types.DefaultSettings()), nil)

	_, err := h.Handle(context.Background(), setupPDF(t), "mmd")

	var execErr *types.OcrExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error %v is not an OcrExecutionError", err)
	}
}

func TestHandle_FormatResolution(t *testing.T) {
	const native = `intro \(x\) and \[y \tag{1}\]`

	tests := []struct {
		name       string
		requested  string
		settings   types.Settings
		wantFormat types.OutputFormat
		wantText   string
	}{
		{
			name:       "explicit mmd returns native markup verbatim",
			requested:  "mmd",
			settings:   types.DefaultSettings(),
			wantFormat: types.FormatMMD,
			wantText:   native,
		},
		{
			name:       "default resolves to configured mmd",
			requested:  "default",
			settings:   types.DefaultSettings(),
			wantFormat: types.FormatMMD,
			wantText:   native,
		},
		{
			name:       "empty format behaves as default",
			requested:  "",
			settings:   types.DefaultSettings(),
			wantFormat: types.FormatMMD,
			wantText:   native,
		},
		{
			name:       "explicit md converts",
			requested:  "md",
			settings:   types.DefaultSettings(),
			wantFormat: types.FormatMD,
			wantText:   "intro $x$ and $$\ny \\qquad\\text{(1)}\n$$",
		},
		{
			name:      "default resolves to configured md",
			requested: "default",
			settings: types.Settings{
				DefaultOutputFormat: types.FormatMD,
				RewriteTags:         true,
				FixSizedDelimiters:  true,
			},
			wantFormat: types.FormatMD,
			wantText:   "intro $x$ and $$\ny \\qquad\\text{(1)}\n$$",
		},
		{
			name:      "md honors disabled tag rewriting",
			requested: "md",
			settings: types.Settings{
				DefaultOutputFormat: types.FormatMMD,
				RewriteTags:         false,
				FixSizedDelimiters:  true,
			},
			wantFormat: types.FormatMD,
			wantText:   "intro $x$ and $$\ny \\tag{1}\n$$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{output: native}
			h := NewHandler(engine, stubSettings(tt.settings), nil)

			res, err := h.Handle(context.Background(), setupPDF(t), tt.requested)
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if res.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", res.Format, tt.wantFormat)
			}
			if res.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", res.Text, tt.wantText)
			}
		})
	}
}

func TestHandle_DefaultMatchesExplicit(t *testing.T) {
	// handle(path, "default") with resolved default mmd is byte-identical
	// to handle(path, "mmd").
	pdf := setupPDF(t)
	engine := &fakeEngine{output: "# Title\n\n\\[E=mc^2\\]\n"}
	h := NewHandler(engine, stubSettings(types.DefaultSettings()), nil)

	viaDefault, err := h.Handle(context.Background(), pdf, "default")
	if err != nil {
		t.Fatal(err)
	}
	viaExplicit, err := h.Handle(context.Background(), pdf, "mmd")
	if err != nil {
		t.Fatal(err)
	}

	if viaDefault.Text != viaExplicit.Text {
		t.Errorf("default output %q differs from explicit mmd output %q", viaDefault.Text, viaExplicit.Text)
	}
	if viaDefault.Format != viaExplicit.Format {
		t.Errorf("default format %q differs from explicit format %q", viaDefault.Format, viaExplicit.Format)
	}
}

func TestHandle_TildePathExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, "paper.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := &fakeEngine{output: "markup"}
	h := NewHandler(engine, stubSettings(types.DefaultSettings()), nil)

	if _, err := h.Handle(context.Background(), "~/paper.pdf", "mmd"); err != nil {
		t.Fatalf("Handle with tilde path: %v", err)
	}
	if engine.transcribed != 1 {
		t.Errorf("engine invoked %d times, want 1", engine.transcribed)
	}
}
