// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup rewrites Nougat's native markup into Markdown that common
// math-aware renderers accept. Conversion is an ordered sequence of pure text
// passes. A region a pass cannot match, such as an unterminated delimiter or
// an unknown sized-delimiter form, is left untouched; a bad region never
// fails the rest of the document.
package markup

import (
	"regexp"
	"strings"
)

// Flags selects the optional conversion passes. Both default to on.
type Flags struct {
	// RewriteTags renders \tag{X} equation labels as visible text, since
	// \tag is not universally supported.
	RewriteTags bool

	// FixSizedDelimiters normalizes brace-escaped sized delimiters such as
	// \bigl{\|}, which KaTeX rejects, to \bigl\|.
	FixSizedDelimiters bool
}

var (
	// Display math: \[ ... \] becomes $$ ... $$. The interior match is
	// non-greedy so an unterminated opener cannot swallow the remainder of
	// the document.
	blockMath = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)

	// Inline math: \( ... \) becomes $ ... $.
	inlineMath = regexp.MustCompile(`(?s)\\\((.*?)\\\)`)

	// Equation tags: \tag{3.2} becomes \qquad\text{(3.2)}. Runs after the
	// delimiter passes so the label lands inside the rewritten $$ block.
	eqTag = regexp.MustCompile(`\\tag\{([^{}]+)\}`)

	// Sized delimiters with a brace-wrapped argument. Open and close
	// variants are covered pairwise; the canonical form has no braces and
	// therefore never re-matches.
	sizedDelim = regexp.MustCompile(`\\(bigl|Bigl|biggl|Biggl|bigr|Bigr|biggr|Biggr)\{([^{}]+)\}`)
)

// Convert rewrites native markup into renderer-friendly Markdown. It is pure
// and deterministic; converting the same input with the same flags always
// yields the same output. Converting already-converted Markdown is undefined.
func Convert(native string, flags Flags) string {
	out := blockMath.ReplaceAllString(native, "$$$$\n${1}\n$$$$")
	out = inlineMath.ReplaceAllString(out, "$$${1}$$")

	if flags.RewriteTags {
		out = eqTag.ReplaceAllString(out, `\qquad\text{(${1})}`)
	}
	if flags.FixSizedDelimiters {
		out = sizedDelim.ReplaceAllStringFunc(out, normalizeSizedDelim)
	}
	return out
}

// normalizeSizedDelim rewrites one \bigl{<delim>} match to \bigl<delim>.
// A blank interior is not a delimiter; the match passes through unchanged.
func normalizeSizedDelim(match string) string {
	sub := sizedDelim.FindStringSubmatch(match)
	delim := strings.TrimSpace(sub[2])
	if delim == "" {
		return match
	}
	return `\` + sub[1] + delim
}
