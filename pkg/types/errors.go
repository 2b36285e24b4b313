// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// InvalidInputError reports a request that failed validation before any work
// started: a missing or non-regular file, a non-PDF extension, or an unknown
// output format literal.
type InvalidInputError struct {
	// Path is the offending file path when the problem is the path itself.
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
	}
	return "invalid input: " + e.Reason
}

// DependencyMissingError reports that the OCR engine executable could not be
// resolved on PATH.
type DependencyMissingError struct {
	Binary string
	Err    error
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s executable not found on PATH: %v", e.Binary, e.Err)
}

func (e *DependencyMissingError) Unwrap() error { return e.Err }

// OcrExecutionError reports a non-zero exit from the OCR subprocess, carrying
// its captured stderr so the failure is actionable without a re-run.
type OcrExecutionError struct {
	PDFPath string
	Stderr  string
	Err     error
}

func (e *OcrExecutionError) Error() string {
	return fmt.Sprintf("nougat failed for %s: %s", e.PDFPath, e.Diagnostic())
}

func (e *OcrExecutionError) Unwrap() error { return e.Err }

// Diagnostic returns the most useful description of the failure: the
// subprocess stderr when it produced any, the exit error otherwise.
func (e *OcrExecutionError) Diagnostic() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// OutputNotFoundError reports that the OCR run exited cleanly but its output
// directory held no unambiguous markup file.
type OutputNotFoundError struct {
	Dir        string
	Candidates int
}

func (e *OutputNotFoundError) Error() string {
	if e.Candidates > 1 {
		return fmt.Sprintf("ambiguous engine output: %d markup files in %s", e.Candidates, e.Dir)
	}
	return fmt.Sprintf("no markup file produced in %s", e.Dir)
}

// ConfigError reports a settings file that exists but could not be parsed.
// Resolution surfaces it rather than silently falling back to defaults.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("malformed settings file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
