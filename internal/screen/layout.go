package screen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/jcorbin/noteforge/notedown"
)

// QuoteBar is drawn before every line of a blockquote.
const QuoteBar = "│ "

// Line is one wrapped display line of an element.
type Line struct {
	Key  int
	Kind notedown.Kind

	// Prefix is the list marker on an item's first line, and blank
	// indentation of the same width on its continuation lines.
	Prefix string

	// Quote lines are drawn after a QuoteBar.
	Quote bool

	Spans []notedown.Span
}

// Layout wraps elements into display lines no wider than width columns,
// counting any marker or quote bar. A width of zero or less disables wrapping.
// Every element yields at least one line; Blank elements yield exactly one,
// carrying no spans.
func Layout(elems []Element, width int) []Line {
	var lines []Line
	for _, elem := range elems {
		if elem.Kind == notedown.Blank {
			lines = append(lines, Line{Key: elem.Key, Kind: elem.Kind})
			continue
		}
		first, rest := "", ""
		if elem.Marker != "" {
			first = elem.Marker + " "
			rest = strings.Repeat(" ", runewidth.StringWidth(first))
		}
		quote := elem.Kind == notedown.Blockquote
		avail := width
		if avail > 0 {
			avail -= runewidth.StringWidth(first)
			if quote {
				avail -= runewidth.StringWidth(QuoteBar)
			}
			if avail < 1 {
				avail = 1
			}
		}
		for i, spans := range wrapSpans(elem.Spans, avail) {
			prefix := rest
			if i == 0 {
				prefix = first
			}
			lines = append(lines, Line{
				Key:    elem.Key,
				Kind:   elem.Kind,
				Prefix: prefix,
				Quote:  quote,
				Spans:  spans,
			})
		}
	}
	return lines
}

type word struct {
	style notedown.Style
	text  string
	space bool // preceded by whitespace
}

func splitWords(spans []notedown.Span) []word {
	var (
		words []word
		space bool
	)
	for _, span := range spans {
		start := -1
		for i, r := range span.Text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					words = append(words, word{span.Style, span.Text[start:i], space})
					start, space = -1, false
				}
				space = true
			} else if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			words = append(words, word{span.Style, span.Text[start:], space})
			space = false
		}
	}
	return words
}

// wrapSpans greedily fills lines with whole words, breaking words that are
// wider than a line on their own. Runs of whitespace collapse to one space,
// styled like its neighbours when they agree, plainly otherwise.
func wrapSpans(spans []notedown.Span, width int) [][]notedown.Span {
	var (
		lines [][]notedown.Span
		cur   lineBuilder
	)
	for _, w := range splitWords(spans) {
		ww := runewidth.StringWidth(w.text)
		if !cur.empty() && width > 0 {
			need := ww
			if w.space {
				need++
			}
			if cur.width+need > width {
				lines = append(lines, cur.spans)
				cur = lineBuilder{}
			}
		}
		for width > 0 && cur.empty() && ww > width {
			head := runewidth.Truncate(w.text, width, "")
			if head == "" {
				// a single rune wider than the line
				_, n := utf8.DecodeRuneInString(w.text)
				head = w.text[:n]
			}
			cur.add(word{w.style, head, false})
			lines = append(lines, cur.spans)
			cur = lineBuilder{}
			w.text = w.text[len(head):]
			ww = runewidth.StringWidth(w.text)
		}
		if w.text != "" {
			if cur.empty() {
				w.space = false
			}
			cur.add(w)
		}
	}
	if !cur.empty() || len(lines) == 0 {
		lines = append(lines, cur.spans)
	}
	return lines
}

type lineBuilder struct {
	spans []notedown.Span
	width int
}

func (lb *lineBuilder) empty() bool { return len(lb.spans) == 0 }

func (lb *lineBuilder) add(w word) {
	if w.space && !lb.empty() {
		style := notedown.Plain
		if last := lb.spans[len(lb.spans)-1]; last.Style == w.style {
			style = w.style
		}
		lb.append(style, " ")
		lb.width++
	}
	lb.append(w.style, w.text)
	lb.width += runewidth.StringWidth(w.text)
}

func (lb *lineBuilder) append(style notedown.Style, text string) {
	if n := len(lb.spans); n > 0 && lb.spans[n-1].Style == style {
		lb.spans[n-1].Text += text
		return
	}
	lb.spans = append(lb.spans, notedown.Span{Style: style, Text: text})
}
