// Package notedown classifies lines of a small markdown subset into blocks
// carrying styled inline spans.
//
// Only a handful of line shapes are recognized: ATX headings of level 1 to 3,
// ordered and unordered list items, block quotes, blank lines and paragraphs.
// Every line stands alone; nothing spans lines, so there are no lists, quotes
// or paragraphs wider than a single line, and no recovery is ever needed:
// anything unrecognized is a paragraph and any unmatched inline delimiter is
// plain text.
package notedown

import "strings"

// Kind is the classification of a single line.
type Kind int

// Kind constants, in classification order.
const (
	Paragraph Kind = iota
	Heading1
	Heading2
	Heading3
	OrderedListItem
	UnorderedListItem
	Blockquote
	Blank
)

// Block is one classified line.
type Block struct {
	Kind  Kind
	Spans []Span
}

// Document is the ordered sequence of blocks of one note, one per source line.
// Documents are built by Parse and not modified afterwards.
type Document []Block

// Text returns the concatenated text of the receiver's spans, ignoring style.
func (b Block) Text() string {
	switch len(b.Spans) {
	case 0:
		return ""
	case 1:
		return b.Spans[0].Text
	}
	var sb strings.Builder
	for _, span := range b.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// IsHeading returns true for any of the three heading kinds.
func (k Kind) IsHeading() bool {
	return k == Heading1 || k == Heading2 || k == Heading3
}

// IsListItem returns true for ordered and unordered list items.
func (k Kind) IsListItem() bool {
	return k == OrderedListItem || k == UnorderedListItem
}

// Parse splits markdown into lines and classifies each of them.
// A trailing carriage return on any line is dropped.
func Parse(markdown string) Document {
	lines := strings.Split(markdown, "\n")
	doc := make(Document, len(lines))
	for i, line := range lines {
		doc[i] = Classify(strings.TrimSuffix(line, "\r"))
	}
	return doc
}

// Classify determines the kind of a single line, and parses the inline spans
// of whatever remains after its structural prefix.
func Classify(line string) Block {
	for _, r := range lineRecognizers {
		if kind, rest, ok := r(line); ok {
			if kind == Blank {
				return Block{Kind: Blank}
			}
			return Block{Kind: kind, Spans: ParseInline(rest)}
		}
	}
	return Block{Kind: Paragraph, Spans: ParseInline(line)}
}

type lineRecognizer func(line string) (Kind, string, bool)

// NOTE order matters, since prefixes overlap: "# " must not be taken for a
// paragraph, "* " must win over blank detection, and so on.
var lineRecognizers = []lineRecognizer{
	prefixed("# ", Heading1),
	prefixed("## ", Heading2),
	prefixed("### ", Heading3),
	ordinal,
	prefixed("- ", UnorderedListItem),
	prefixed("* ", UnorderedListItem),
	prefixed("> ", Blockquote),
	blank,
}

func prefixed(prefix string, kind Kind) lineRecognizer {
	return func(line string) (Kind, string, bool) {
		if strings.HasPrefix(line, prefix) {
			return kind, line[len(prefix):], true
		}
		return 0, "", false
	}
}

// ordinal recognizes a run of ASCII digits followed by ". ".
func ordinal(line string) (Kind, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && strings.HasPrefix(line[i:], ". ") {
		return OrderedListItem, line[i+2:], true
	}
	return 0, "", false
}

func blank(line string) (Kind, string, bool) {
	if strings.TrimSpace(line) == "" {
		return Blank, "", true
	}
	return 0, "", false
}
