package source

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxSummaryLen is the short-summary field limit
const maxSummaryLen = 280

// strictPolicy strips every tag, third-party HTML and XML is untrusted input
var strictPolicy = bluemonday.StrictPolicy()

// cleanSummary removes all markup from upstream description text, collapses
// whitespace and trims to the summary length limit. No tag structure survives
// into the stored summary.
func cleanSummary(s string) string {
	out := strictPolicy.Sanitize(s)
	out = html.UnescapeString(out)
	out = strings.Join(strings.Fields(out), " ")
	return truncate(out, maxSummaryLen)
}

// collapseSpaces normalizes runs of whitespace inside titles
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts a string to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
