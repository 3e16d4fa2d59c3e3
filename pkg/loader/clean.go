package loader

import (
	"regexp"
	"strings"
)

var (
	reHyphenBreak = regexp.MustCompile(`-\n(\w)`)
	reBlankLines  = regexp.MustCompile(`\n{3,}`)
	reSpaces      = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText normalizes raw extracted text: carriage returns become
// newlines, words hyphenated across line breaks are joined, and runs of
// blank lines and spaces are collapsed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reHyphenBreak.ReplaceAllString(s, "$1")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
