package notedown

import (
	"regexp"
	"strings"
)

// Style is the inline styling of a Span.
type Style int

// Style constants.
const (
	Plain Style = iota
	Bold
	Code
)

// Span is a run of text sharing one style, its delimiters already removed.
type Span struct {
	Style Style
	Text  string
}

// Delimiter returns the marker that surrounds the receiver style in source
// text, or the empty string for Plain.
func (s Style) Delimiter() string {
	switch s {
	case Bold:
		return "**"
	case Code:
		return "`"
	default:
		return ""
	}
}

// The leftmost match wins; at a given offset bold is tried before code.
// Matching is non-greedy, so the first closing delimiter ends a span.
var inlinePattern = regexp.MustCompile("\\*\\*(.*?)\\*\\*|`(.*?)`")

// ParseInline splits text into plain, bold and code spans.
//
// Delimiters do not nest: within a bold span backticks are literal, and vice
// versa. A delimiter without a closing partner is kept as plain text.
// Delimited pairs with nothing between them still produce an (empty) styled
// span, so that re-adding delimiters always reproduces text exactly.
func ParseInline(text string) []Span {
	if text == "" {
		return nil
	}
	matches := inlinePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Span{{Plain, text}}
	}
	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Plain, text[last:m[0]]})
		}
		if m[2] >= 0 {
			spans = append(spans, Span{Bold, text[m[2]:m[3]]})
		} else {
			spans = append(spans, Span{Code, text[m[4]:m[5]]})
		}
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Plain, text[last:]})
	}
	return spans
}

// Markdown re-adds the delimiters around each span, reproducing the inline
// source they were parsed from.
func Markdown(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		delim := span.Style.Delimiter()
		sb.WriteString(delim)
		sb.WriteString(span.Text)
		sb.WriteString(delim)
	}
	return sb.String()
}

var delimiterChars = regexp.MustCompile("[#*`]")

// StripDelimiters removes every heading, emphasis and code marker character
// from line, wherever it occurs. This is the blunt plain-text treatment used
// for non-interactive output, where styling is not carried through.
func StripDelimiters(line string) string {
	return delimiterChars.ReplaceAllLiteralString(line, "")
}

// Words counts the whitespace separated fields of markdown.
func Words(markdown string) int {
	return len(strings.Fields(markdown))
}
