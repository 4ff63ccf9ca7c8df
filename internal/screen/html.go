package screen

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/russross/blackfriday"

	"github.com/jcorbin/noteforge/internal/noteutil"
	"github.com/jcorbin/noteforge/notedown"
)

// ElementID returns the HTML id of the element with the given key.
func ElementID(key int) string { return fmt.Sprintf("block-%d", key) }

// HTML writes elements as an HTML fragment.
type HTML struct {
	Header *Header
	Footer string
}

// WriteHTML writes elements as an HTML fragment.
func WriteHTML(w io.Writer, elems []Element) error {
	return HTML{}.Write(w, elems)
}

// Write renders an article of every element, with an optional header and
// footer. Headings carry their element id directly; other elements are
// anchored by an empty link target, and blank elements become empty spacer
// divisions. Adjacent items of the same list kind share one list, which
// blank elements between them loosen rather than end.
func (h HTML) Write(w io.Writer, elems []Element) error {
	root := blackfriday.NewNode(blackfriday.Document)
	if h.Header != nil {
		appendHeader(root, *h.Header)
	}
	root.AppendChild(rawBlock(`<article class="note">`))
	appendElements(root, elems)
	root.AppendChild(rawBlock(`</article>`))
	if h.Footer != "" {
		root.AppendChild(rawBlock(fmt.Sprintf(`<footer class="note-footer">%s</footer>`, html.EscapeString(h.Footer))))
	}

	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{})
	ew := &noteutil.ErrWriter{Writer: w}
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if ew.Err != nil {
			return blackfriday.Terminate
		}
		return r.RenderNode(ew, node, entering)
	})
	return ew.Err
}

func appendHeader(root *blackfriday.Node, hdr Header) {
	root.AppendChild(rawBlock(`<header class="note-header">`))

	byline := blackfriday.NewNode(blackfriday.Paragraph)
	byline.AppendChild(textNode(hdr.Subject))
	if hdr.Level != "" {
		byline.AppendChild(textNode(" "))
		byline.AppendChild(rawSpan(fmt.Sprintf(
			`<span class="badge" style="background-color:%s">%s</span>`,
			LevelColor(hdr.Level), html.EscapeString(hdr.Badge()))))
	}
	root.AppendChild(byline)

	title := blackfriday.NewNode(blackfriday.Heading)
	title.Level = 1
	title.HeadingID = "note-title"
	title.AppendChild(textNode(hdr.Topic))
	root.AppendChild(title)

	if stamp := hdr.Stamp(); stamp != "" {
		para := blackfriday.NewNode(blackfriday.Paragraph)
		emph := blackfriday.NewNode(blackfriday.Emph)
		emph.AppendChild(textNode(stamp))
		para.AppendChild(emph)
		root.AppendChild(para)
	}

	root.AppendChild(rawBlock(`</header>`))
}

func appendElements(root *blackfriday.Node, elems []Element) {
	var list *blackfriday.Node
	for i, elem := range elems {
		if list != nil && !continuesList(list, elems[i:]) {
			list = nil
		}

		switch elem.Kind {
		case notedown.Blank:
			if list != nil {
				list.Tight = false
				continue
			}
			root.AppendChild(rawBlock(fmt.Sprintf(`<div id="%s" class="spacer"></div>`, ElementID(elem.Key))))

		case notedown.Heading1, notedown.Heading2, notedown.Heading3:
			heading := blackfriday.NewNode(blackfriday.Heading)
			heading.Level = int(elem.Kind-notedown.Heading1) + 1
			heading.HeadingID = ElementID(elem.Key)
			appendSpans(heading, elem.Spans)
			root.AppendChild(heading)

		case notedown.OrderedListItem, notedown.UnorderedListItem:
			if list == nil {
				list = blackfriday.NewNode(blackfriday.List)
				list.Tight = true
				if elem.Kind == notedown.OrderedListItem {
					list.ListFlags = blackfriday.ListTypeOrdered
				}
				root.AppendChild(list)
			}
			item := blackfriday.NewNode(blackfriday.Item)
			item.ListFlags = list.ListFlags
			item.AppendChild(anchoredParagraph(elem))
			list.AppendChild(item)

		case notedown.Blockquote:
			quote := blackfriday.NewNode(blackfriday.BlockQuote)
			quote.AppendChild(anchoredParagraph(elem))
			root.AppendChild(quote)

		default:
			root.AppendChild(anchoredParagraph(elem))
		}
	}
}

// continuesList reports whether the next non-blank element is an item of the
// same kind as the open list.
func continuesList(list *blackfriday.Node, rest []Element) bool {
	want := notedown.UnorderedListItem
	if list.ListFlags&blackfriday.ListTypeOrdered != 0 {
		want = notedown.OrderedListItem
	}
	for _, elem := range rest {
		if elem.Kind != notedown.Blank {
			return elem.Kind == want
		}
	}
	return false
}

func anchoredParagraph(elem Element) *blackfriday.Node {
	para := blackfriday.NewNode(blackfriday.Paragraph)
	para.AppendChild(rawSpan(fmt.Sprintf(`<a id="%s"></a>`, ElementID(elem.Key))))
	appendSpans(para, elem.Spans)
	return para
}

func appendSpans(parent *blackfriday.Node, spans []notedown.Span) {
	for _, span := range spans {
		switch span.Style {
		case notedown.Bold:
			strong := blackfriday.NewNode(blackfriday.Strong)
			strong.AppendChild(textNode(span.Text))
			parent.AppendChild(strong)
		case notedown.Code:
			code := blackfriday.NewNode(blackfriday.Code)
			code.Literal = []byte(span.Text)
			parent.AppendChild(code)
		default:
			parent.AppendChild(textNode(span.Text))
		}
	}
}

func textNode(s string) *blackfriday.Node {
	text := blackfriday.NewNode(blackfriday.Text)
	text.Literal = []byte(s)
	return text
}

func rawSpan(s string) *blackfriday.Node {
	span := blackfriday.NewNode(blackfriday.HTMLSpan)
	span.Literal = []byte(s)
	return span
}

func rawBlock(s string) *blackfriday.Node {
	block := blackfriday.NewNode(blackfriday.HTMLBlock)
	block.Literal = []byte(strings.TrimSpace(s))
	return block
}
