// Package html extracts readable text from HTML pages.
//
// Scripts, styles and other non-prose elements are dropped, block elements
// become line breaks and entities are decoded.
package html

import (
	"html"
	"regexp"
	"strings"
)

var (
	hiddenElements = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg|template)\b[^>]*>.*?</(script|style|noscript|head|svg|template)>`)
	comments       = regexp.MustCompile(`(?s)<!--.*?-->`)
	openBlocks     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|header|footer|aside)[^>]*>`)
	closeBlocks    = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article|header|footer|aside)>`)
	breaks         = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	cells          = regexp.MustCompile(`(?i)</t[dh]>`)
	tags           = regexp.MustCompile(`<[^>]+>`)
	spaces         = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
)

// Strip returns the visible text of an HTML document, one block per line.
func Strip(content string) string {
	content = hiddenElements.ReplaceAllString(content, "")
	content = comments.ReplaceAllString(content, "")

	content = openBlocks.ReplaceAllString(content, "\n")
	content = closeBlocks.ReplaceAllString(content, "\n")
	content = breaks.ReplaceAllString(content, "\n")
	content = cells.ReplaceAllString(content, " ")
	content = tags.ReplaceAllString(content, "")

	content = html.UnescapeString(content)
	content = spaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
