// Package markdown reduces Markdown source to the prose it contains.
package markdown

import (
	"regexp"
	"strings"
)

var (
	codeBlock     = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`[^`\n]+`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	rule          = regexp.MustCompile(`(?m)^\s*[-*_]{3,}\s*$`)
	listMarkers   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	emphasis      = regexp.MustCompile(`\*{1,3}|_{2,3}`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Strip removes Markdown syntax and returns the remaining text.
// Code is dropped, links keep their text and images disappear.
func Strip(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")

	// Rules and list markers share characters with emphasis, so go first.
	content = rule.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "")

	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
