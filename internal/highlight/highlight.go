// Package highlight renders analysed text with the spans that matched a source marked.
package highlight

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// MinSegmentLength is the trimmed length a segment must exceed to be highlighted.
const MinSegmentLength = 10

// Marker wraps a span of text matched by source for display.
type Marker func(span string, source domain.Source) string

// HTMLMarker wraps spans in a <mark> element tagged with the source URL.
func HTMLMarker(span string, source domain.Source) string {
	if source.URL == "" {
		return "<mark>" + span + "</mark>"
	}
	return `<mark data-source="` + html.EscapeString(source.URL) + `">` + span + "</mark>"
}

// BracketMarker wraps spans in double brackets for plain-text output.
func BracketMarker(span string, _ domain.Source) string {
	return "[[" + span + "]]"
}

// Span is a highlighted byte range [Start, End) of the text.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Spans returns the non-overlapping ranges of text claimed by the source's segments.
//
// Segments are placed longest first. Every occurrence of a segment is claimed
// unless it intersects a range claimed earlier, so longer matches win over
// shorter ones that would cut into them. Matching ignores case and treats any
// whitespace run as a single space. The result is sorted by Start.
func Spans(text string, source domain.Source) []Span {
	segments := orderSegments(source.SegmentTexts())

	var claimed []Span
	for _, seg := range segments {
		re := segmentPattern(seg)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			span := Span{Start: loc[0], End: loc[1]}
			if overlapsAny(span, claimed) {
				continue
			}
			claimed = append(claimed, span)
		}
	}

	sort.Slice(claimed, func(i, j int) bool {
		return claimed[i].Start < claimed[j].Start
	})
	return claimed
}

// Highlight returns text with every span claimed by source wrapped by marker.
// A nil marker uses HTMLMarker.
func Highlight(text string, source domain.Source, marker Marker) string {
	if marker == nil {
		marker = HTMLMarker
	}

	spans := Spans(text, source)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*16)

	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(marker(text[s.Start:s.End], source))
		last = s.End
	}
	b.WriteString(text[last:])

	return b.String()
}

// orderSegments trims, filters and de-duplicates segments, longest first.
func orderSegments(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= MinSegmentLength {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// segmentPattern matches a segment case-insensitively with flexible whitespace.
func segmentPattern(segment string) *regexp.Regexp {
	words := strings.Fields(segment)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(words, `\s+`))
}

func overlapsAny(span Span, claimed []Span) bool {
	for _, c := range claimed {
		if span.Overlaps(c) {
			return true
		}
	}
	return false
}
