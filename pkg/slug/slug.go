// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode titles into safe file names.
//
// # Usage
//
// Exported books are named after the novel (e.g., "رحلة الصحراء.doc").
// Arabic letters and diacritics are kept; only characters that file systems
// reject are replaced.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is used when nothing usable is left of the input.
const Fallback = "novel"

var (
	// illegal matches characters rejected by Windows, macOS or Linux file systems.
	illegal = regexp.MustCompile(`[/\\:*?"<>|]`)
	// multiSpace collapses runs of whitespace into one space.
	multiSpace = regexp.MustCompile(`\s+`)
)

// FileName converts a title into a file-system safe base name (no extension).
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC so the same title always yields the same bytes.
// 2. Drops control characters.
// 3. Replaces path-illegal characters with underscores.
// 4. Collapses whitespace and trims leading/trailing spaces and dots.
func FileName(title string) string {
	// 1. Normalize
	result := norm.NFC.String(title)

	// 2. Control characters
	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, result)

	// 3. Illegal characters
	result = illegal.ReplaceAllString(result, "_")

	// 4. Whitespace and dots
	result = multiSpace.ReplaceAllString(result, " ")
	result = strings.Trim(result, " .")

	if result == "" {
		return Fallback
	}
	return result
}
