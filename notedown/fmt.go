package notedown

import (
	"fmt"
	"io"
)

// Format writes a kind name string.
func (k Kind) Format(f fmt.State, _ rune) {
	io.WriteString(f, k.String())
}

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "Paragraph"
	case Heading1:
		return "Heading1"
	case Heading2:
		return "Heading2"
	case Heading3:
		return "Heading3"
	case OrderedListItem:
		return "OrderedListItem"
	case UnorderedListItem:
		return "UnorderedListItem"
	case Blockquote:
		return "Blockquote"
	case Blank:
		return "Blank"
	default:
		return fmt.Sprintf("InvalidKind%d", int(k))
	}
}

// Format writes a style name string.
func (s Style) Format(f fmt.State, _ rune) {
	io.WriteString(f, s.String())
}

func (s Style) String() string {
	switch s {
	case Plain:
		return "Plain"
	case Bold:
		return "Bold"
	case Code:
		return "Code"
	default:
		return fmt.Sprintf("InvalidStyle%d", int(s))
	}
}

// Format writes a textual representation of the receiver, like
// `Bold("driver")`.
func (s Span) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v(%q)", s.Style, s.Text)
}

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a verbose form listing every span when
// formatted with `%+v`, a terse kind and text form otherwise.
func (b Block) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		fmt.Fprintf(f, "%v %q", b.Kind, b.Text())
		return
	}
	fmt.Fprintf(f, "%v[", b.Kind)
	for i, span := range b.Spans {
		if i > 0 {
			io.WriteString(f, " ")
		}
		fmt.Fprint(f, span)
	}
	io.WriteString(f, "]")
}

// Format writes one block per line, numbered from 1; its verbose `%+v` form
// lists spans.
func (doc Document) Format(f fmt.State, _ rune) {
	for i, b := range doc {
		if i > 0 {
			io.WriteString(f, "\n")
		}
		if f.Flag('+') {
			fmt.Fprintf(f, "%v. %+v", i+1, b)
		} else {
			fmt.Fprintf(f, "%v. %v", i+1, b)
		}
	}
}
