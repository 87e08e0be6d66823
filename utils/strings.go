// backend/utils/strings.go
package utils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	trailingZeros = regexp.MustCompile(`^([0-9]+)\.0+$`)
)

// NormalizeWhitespace trims a string and collapses every interior run of
// whitespace (spaces, tabs, newlines) to a single space. Empty input stays empty.
func NormalizeWhitespace(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return whitespaceRun.ReplaceAllString(trimmed, " ")
}

// CleanCode normalizes a code-like cell value: trims whitespace and strips an
// accidental ".0" decimal suffix that appears when a spreadsheet stored the
// code as a float (e.g. "30102.0" -> "30102"). The digit prefix is kept
// verbatim, so leading zeros survive ("030102.00" -> "030102"). Anything that
// does not look like a float-damaged code is returned trimmed but otherwise
// untouched.
func CleanCode(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := trailingZeros.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return trimmed
}
