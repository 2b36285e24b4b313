// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared across the nougat-mcp pipeline:
// output formats, resolved settings, transcription results, and the error
// taxonomy surfaced at the tool boundary.
package types

import (
	"fmt"
	"time"
)

// OutputFormat selects the markup dialect returned to the client.
type OutputFormat string

const (
	// FormatDefault defers to the configured default. It is an indirection
	// only; it is resolved to a concrete format before any conversion runs.
	FormatDefault OutputFormat = "default"

	// FormatMMD is Nougat's native markup, returned verbatim.
	FormatMMD OutputFormat = "mmd"

	// FormatMD is renderer-friendly Markdown using $ and $$ math delimiters.
	FormatMD OutputFormat = "md"
)

// ParseOutputFormat validates a client-supplied format literal. The empty
// string means FormatDefault; anything outside the known set is an
// *InvalidInputError.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatMMD, FormatMD:
		return f, nil
	default:
		return "", &InvalidInputError{
			Reason: fmt.Sprintf("output_format must be %q, %q, or %q, got %q",
				FormatDefault, FormatMMD, FormatMD, s),
		}
	}
}

// TranscriptionResult is the outcome of one parse request. It exists only for
// the duration of the request; nothing is persisted.
type TranscriptionResult struct {
	// Text is the transcription in the effective format.
	Text string

	// Format is the concrete format Text was rendered in, never FormatDefault.
	Format OutputFormat

	// Pages is the page count probed from the PDF, 0 when the probe failed.
	Pages int

	// OCRDuration is the wall-clock time spent in the Nougat subprocess.
	OCRDuration time.Duration
}
