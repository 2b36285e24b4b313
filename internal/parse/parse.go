// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse orchestrates a single transcription request: input
// validation, engine invocation, settings resolution, and markup conversion.
// A request either returns the full transcription or an error, never a
// truncated success.
package parse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	rpdf "rsc.io/pdf"

	"github.com/svretina/nougat-mcp/internal/markup"
	"github.com/svretina/nougat-mcp/internal/pathutil"
	"github.com/svretina/nougat-mcp/pkg/types"
)

// Engine is the external OCR collaborator. The production implementation is
// nougat.Runner; tests supply a fake.
type Engine interface {
	// Available reports whether the engine executable is resolvable.
	Available() error

	// Transcribe produces the native-markup transcription of a PDF.
	Transcribe(ctx context.Context, pdfPath string) (string, error)
}

// SettingsFunc resolves the output settings for one request.
type SettingsFunc func() (types.Settings, error)

// Handler executes parse requests end to end. It is stateless across
// requests; settings are resolved fresh each time so configuration edits
// take effect without a restart.
type Handler struct {
	engine  Engine
	resolve SettingsFunc
	log     *slog.Logger
}

// NewHandler builds a Handler around the given engine and settings resolver.
// A nil logger discards request logs.
func NewHandler(engine Engine, resolve SettingsFunc, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{engine: engine, resolve: resolve, log: log}
}

// Handle runs one transcription request. requestedFormat is the client
// literal; "default" (or empty) resolves through the settings record.
func (h *Handler) Handle(ctx context.Context, path, requestedFormat string) (types.TranscriptionResult, error) {
	var zero types.TranscriptionResult

	format, err := types.ParseOutputFormat(requestedFormat)
	if err != nil {
		return zero, err
	}

	abs, err := validatePDFPath(path)
	if err != nil {
		return zero, err
	}

	// Fail fast on a missing engine before resolving anything else.
	if err := h.engine.Available(); err != nil {
		return zero, err
	}

	s, err := h.resolve()
	if err != nil {
		return zero, err
	}

	effective := format
	if effective == types.FormatDefault {
		effective = s.DefaultOutputFormat
	}

	pages := pageCount(abs)

	start := time.Now()
	native, err := h.engine.Transcribe(ctx, abs)
	if err != nil {
		return zero, err
	}
	elapsed := time.Since(start)

	text := native
	if effective == types.FormatMD {
		text = markup.Convert(native, markup.Flags{
			RewriteTags:        s.RewriteTags,
			FixSizedDelimiters: s.FixSizedDelimiters,
		})
	}

	h.log.Info("parsed paper",
		slog.String("pdf", abs),
		slog.String("format", string(effective)),
		slog.Int("pages", pages),
		slog.Duration("ocr", elapsed),
	)

	return types.TranscriptionResult{
		Text:        text,
		Format:      effective,
		Pages:       pages,
		OCRDuration: elapsed,
	}, nil
}

// validatePDFPath expands and absolutizes path and checks that it names an
// existing regular file with a .pdf extension.
func validatePDFPath(path string) (string, error) {
	abs, err := filepath.Abs(pathutil.ExpandUser(path))
	if err != nil {
		return "", &types.InvalidInputError{Path: path, Reason: err.Error()}
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return "", &types.InvalidInputError{Path: abs, Reason: "file not found"}
	case err != nil:
		return "", &types.InvalidInputError{Path: abs, Reason: err.Error()}
	case !info.Mode().IsRegular():
		return "", &types.InvalidInputError{Path: abs, Reason: "not a regular file"}
	}

	if ext := strings.ToLower(filepath.Ext(abs)); ext != ".pdf" {
		return "", &types.InvalidInputError{
			Path:   abs,
			Reason: fmt.Sprintf("extension %q is not .pdf; only PDF documents are supported", ext),
		}
	}
	return abs, nil
}

// pageCount probes the PDF for its page count. Best effort: a zero return
// means the probe failed, which is not a request failure since the engine
// may still handle PDFs this reader cannot.
func pageCount(path string) (n int) {
	// rsc.io/pdf panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0
	}
	doc, err := rpdf.NewReader(f, info.Size())
	if err != nil {
		return 0
	}
	return doc.NumPage()
}
