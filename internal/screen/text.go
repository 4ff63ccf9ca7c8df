package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jcorbin/noteforge/internal/noteutil"
	"github.com/jcorbin/noteforge/notedown"
)

// Text writes elements as styled terminal text.
type Text struct {
	// Width wraps lines to at most this many columns, when positive.
	Width int

	// Renderer determines the colour profile; a nil Renderer is detected
	// from the writer, which leaves output unstyled unless it is a terminal.
	Renderer *lipgloss.Renderer

	Header *Header
	Footer string
}

// WriteText writes elements as styled text, wrapped to width columns.
func WriteText(w io.Writer, elems []Element, width int) error {
	return Text{Width: width}.Write(w, elems)
}

// Write writes an optional header, every element, then an optional footer.
func (t Text) Write(w io.Writer, elems []Element) error {
	r := t.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}
	st := newTextStyles(r)

	ew := &noteutil.ErrWriter{Writer: w}
	if hdr := t.Header; hdr != nil {
		byline := st.accent.Render(hdr.Subject)
		if hdr.Level != "" {
			byline += " " + st.badge.Background(lipgloss.Color(LevelColor(hdr.Level))).Render(hdr.Badge())
		}
		fmt.Fprintln(ew, byline)
		fmt.Fprintln(ew, st.heading[1].Render(hdr.Topic))
		if stamp := hdr.Stamp(); stamp != "" {
			fmt.Fprintln(ew, st.faint.Render(stamp))
		}
		fmt.Fprintln(ew)
	}

	lines := Layout(elems, t.Width)
	i := 0
	noteutil.WriteLines(ew, func(w io.Writer) bool {
		if i >= len(lines) {
			return false
		}
		st.writeLine(w, lines[i])
		i++
		return true
	})

	if t.Footer != "" {
		fmt.Fprintln(ew)
		fmt.Fprintln(ew, st.faint.Render(t.Footer))
	}
	return ew.Err
}

type textStyles struct {
	heading [4]lipgloss.Style
	plain   lipgloss.Style
	quote   lipgloss.Style
	bar     lipgloss.Style
	marker  lipgloss.Style
	accent  lipgloss.Style
	faint   lipgloss.Style
	badge   lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	var st textStyles
	st.plain = r.NewStyle()
	st.heading[1] = r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(headingColor))
	st.heading[2] = r.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor))
	st.heading[3] = r.NewStyle().Bold(true).Underline(true)
	st.quote = r.NewStyle().Italic(true)
	st.bar = r.NewStyle().Foreground(lipgloss.Color(quoteColor))
	st.marker = r.NewStyle().Foreground(lipgloss.Color(accentColor))
	st.accent = r.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor))
	st.faint = r.NewStyle().Faint(true)
	st.badge = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	return st
}

func (st textStyles) base(kind notedown.Kind) lipgloss.Style {
	switch kind {
	case notedown.Heading1:
		return st.heading[1]
	case notedown.Heading2:
		return st.heading[2]
	case notedown.Heading3:
		return st.heading[3]
	case notedown.Blockquote:
		return st.quote
	default:
		return st.plain
	}
}

func (st textStyles) span(base lipgloss.Style, span notedown.Span) string {
	switch span.Style {
	case notedown.Bold:
		return base.Bold(true).Render(span.Text)
	case notedown.Code:
		return base.
			Foreground(lipgloss.Color(codeColor)).
			Background(lipgloss.Color(codeBackground)).
			Render(span.Text)
	default:
		return base.Render(span.Text)
	}
}

func (st textStyles) writeLine(w io.Writer, line Line) {
	var sb strings.Builder
	if line.Prefix != "" {
		sb.WriteString(st.marker.Render(line.Prefix))
	}
	base := st.base(line.Kind)
	for _, span := range line.Spans {
		sb.WriteString(st.span(base, span))
	}
	sb.WriteByte('\n')

	if line.Quote {
		pw := noteutil.PrefixWriter(st.bar.Render(QuoteBar), w)
		io.WriteString(pw, sb.String())
		pw.Close()
		return
	}
	io.WriteString(w, sb.String())
}
