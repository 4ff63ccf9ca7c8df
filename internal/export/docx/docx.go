// Package docx renders notes as minimal WordprocessingML (.docx) packages.
package docx

import (
	"regexp"
	"strings"

	"github.com/jcorbin/noteforge/notedown"
)

// Paragraph spacing, in twentieths of a point.
const (
	TitleAfter     = 400
	HeadingBefore  = 240
	ParagraphSpace = 120
)

// Paragraph is one body paragraph of a word document.
type Paragraph struct {
	// Heading is the outline level, or 0 for a body paragraph.
	Heading int
	Before  int
	After   int
	Runs    []Run
}

// Run is a span of uniformly formatted text.
type Run struct {
	Text string
	Bold bool
	Code bool
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Options control how markdown lines become paragraphs.
type Options struct {
	// SpanAccurate bolds only the delimited spans of a line, rendering code
	// spans in a monospace face, instead of bolding every line that contains
	// a bold marker anywhere.
	SpanAccurate bool
}

var headingMarks = regexp.MustCompile(`^#+\s*`)

// Build maps a titled note to its paragraph sequence: a top level heading for
// the title followed by exactly one paragraph per source line. Blank lines
// become empty paragraphs.
//
// Any line starting with '#' becomes a bold sub-heading with its markers
// removed. By default every other line has its delimiter characters removed
// and is bolded as a whole if it contained a bold marker.
func Build(title, markdown string, opts Options) []Paragraph {
	lines := strings.Split(markdown, "\n")
	paras := make([]Paragraph, 0, len(lines)+1)
	paras = append(paras, Paragraph{
		Heading: 1,
		After:   TitleAfter,
		Runs:    []Run{{Text: title}},
	})
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "#") {
			paras = append(paras, Paragraph{
				Heading: 2,
				Before:  HeadingBefore,
				After:   ParagraphSpace,
				Runs:    []Run{{Text: stripMarks(headingMarks.ReplaceAllString(line, "")), Bold: true}},
			})
			continue
		}
		para := Paragraph{Before: ParagraphSpace, After: ParagraphSpace}
		if opts.SpanAccurate {
			para.Runs = spanRuns(line)
		} else {
			para.Runs = []Run{{
				Text: stripMarks(line),
				Bold: strings.Contains(line, "**"),
			}}
		}
		paras = append(paras, para)
	}
	return paras
}

func stripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '*' || r == '`' {
			return -1
		}
		return r
	}, s)
}

// spanRuns keeps the line's structural prefix as plain text, then maps each
// inline span to a run.
func spanRuns(line string) []Run {
	block := notedown.Classify(line)
	if block.Kind == notedown.Blank {
		return []Run{{Text: line}}
	}
	rest := notedown.Markdown(block.Spans)
	var runs []Run
	if prefix := line[:len(line)-len(rest)]; prefix != "" {
		runs = append(runs, Run{Text: prefix})
	}
	for _, span := range block.Spans {
		runs = append(runs, Run{
			Text: span.Text,
			Bold: span.Style == notedown.Bold,
			Code: span.Style == notedown.Code,
		})
	}
	if len(runs) == 0 {
		runs = append(runs, Run{})
	}
	return runs
}
