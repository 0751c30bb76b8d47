// Package noise strips recurring boilerplate (page numbers, separator
// rules, footer lines) from rendered document text.
package noise

import (
	"regexp"
	"strings"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Patterns run in order; line-anchored rules use multiline mode.
var rules = []rule{
	// Page numbers.
	{regexp.MustCompile(`第\s*\d+\s*页`), ""},
	{regexp.MustCompile(`(?m)^\s*Page\s+\d+\s*$`), ""},
	{regexp.MustCompile(`(?m)^\s*\d+\s*$`), ""},
	{regexp.MustCompile(`(?m)^\s*\d+\s*/\s*\d+\s*$`), ""},
	{regexp.MustCompile(`(?m)^\s*-\s*\d+\s*-\s*$`), ""},

	// Separator rules.
	{regexp.MustCompile(`(?m)^-{3,}\s*$`), ""},
	{regexp.MustCompile(`(?m)^={3,}\s*$`), ""},
	{regexp.MustCompile(`(?m)^_{3,}\s*$`), ""},

	// Common footer lines.
	{regexp.MustCompile(`(?mi)^\s*Copyright\b.*$`), ""},
	{regexp.MustCompile(`(?m)^\s*©.*$`), ""},
	{regexp.MustCompile(`(?mi)^\s*All rights reserved.*$`), ""},
	{regexp.MustCompile(`(?mi)^\s*Confidential\b.*$`), ""},
	{regexp.MustCompile(`(?mi)^\s*Proprietary\b.*$`), ""},
}

var (
	manyNewlines = regexp.MustCompile(`\n{3,}`)
	manySpaces   = regexp.MustCompile(`[ \t]{2,}`)
)

// Clean removes boilerplate lines and squeezes leftover whitespace.
func Clean(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	text = manyNewlines.ReplaceAllString(text, "\n\n")
	text = manySpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsBoilerplate reports whether a single line matches a noise pattern,
// for callers filtering block streams rather than rendered text.
func IsBoilerplate(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range rules {
		if loc := r.re.FindStringIndex(trimmed); loc != nil && loc[0] == 0 && loc[1] == len(trimmed) {
			return true
		}
	}
	return false
}
