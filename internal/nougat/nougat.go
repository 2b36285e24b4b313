// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nougat invokes the Nougat OCR engine as an isolated subprocess.
// The engine is a black box: given a PDF path and an output directory it
// writes the transcription as <base>.mmd. Each request gets its own process
// and its own temporary output directory, so a crash in the heavyweight
// inference dependency cannot take down the serving process and stale output
// from earlier runs can never be picked up.
package nougat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/svretina/nougat-mcp/pkg/types"
)

const (
	// DefaultBinary is the Nougat CLI looked up on PATH.
	DefaultBinary = "nougat"

	// outputExt is the extension Nougat gives its markup output.
	outputExt = ".mmd"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// Runner executes the Nougat engine, one subprocess per transcription
// request. It holds no mutable state; a single Runner is safe for concurrent
// requests.
type Runner struct {
	binary string
	exec   executor
}

// NewRunner returns a Runner invoking the given binary, or DefaultBinary
// when empty.
func NewRunner(binary string) *Runner {
	return newRunner(binary, osExecutor{})
}

func newRunner(binary string, exec executor) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{binary: binary, exec: exec}
}

// Binary returns the engine binary name the runner resolves on PATH.
func (r *Runner) Binary() string { return r.binary }

// Available checks that the engine binary resolves on PATH. Callers invoke
// it before any expensive work so a missing install fails fast.
func (r *Runner) Available() error {
	if _, err := r.exec.LookPath(r.binary); err != nil {
		return &types.DependencyMissingError{Binary: r.binary, Err: err}
	}
	return nil
}

// Transcribe runs the engine against pdfPath and returns the native markup.
// The output directory is created fresh for this invocation and removed
// before returning, including when ctx is cancelled mid-run; cancellation
// also kills the subprocess.
func (r *Runner) Transcribe(ctx context.Context, pdfPath string) (string, error) {
	outDir, err := os.MkdirTemp("", "nougat-mcp-")
	if err != nil {
		return "", fmt.Errorf("creating engine output directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	stderr, err := r.exec.Run(ctx, r.binary, pdfPath, "--out", outDir)
	if err != nil {
		return "", &types.OcrExecutionError{
			PDFPath: pdfPath,
			Stderr:  strings.TrimSpace(stderr),
			Err:     err,
		}
	}

	outPath, err := findOutput(outDir, pdfPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("reading engine output %s: %w", outPath, err)
	}
	return string(data), nil
}

// findOutput locates the markup file the engine produced. The expected name
// is the PDF base name with the markup extension; when the engine names its
// output differently (PDF names containing dots, engine version drift) the
// directory is scanned recursively and a single candidate is accepted. Zero
// or several candidates is an OutputNotFoundError.
func findOutput(dir, pdfPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	primary := filepath.Join(dir, base+outputExt)
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}

	var candidates []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == outputExt {
			candidates = append(candidates, path)
		}
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("scanning engine output directory %s: %w", dir, walkErr)
	}

	if len(candidates) != 1 {
		return "", &types.OutputNotFoundError{Dir: dir, Candidates: len(candidates)}
	}
	return candidates[0], nil
}
