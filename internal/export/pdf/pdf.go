// Package pdf renders notes as paginated, plain-styled PDF documents.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/jcorbin/noteforge/notedown"
)

// Page geometry and typography, in millimetres and points.
const (
	Margin      = 20.0
	TitleSize   = 22.0
	TitleTop    = 30.0
	TitleLead   = 9.0
	BodySize    = 11.0
	BodyTop     = 45.0
	LineHeight  = 7.0
	PageTop     = 20.0
	BottomBound = 280.0
)

var (
	titleColor = [3]int{14, 165, 233}
	bodyColor  = [3]int{30, 41, 59}
)

// Layout records where every line of text was placed.
type Layout struct {
	Pages int
	Lines []Line
}

// Line is one drawn line of text; Y is its baseline.
type Line struct {
	Page  int
	Y     float64
	Text  string
	Title bool
}

// MaxY returns the lowest baseline of any line, title lines included.
func (l *Layout) MaxY() float64 {
	max := 0.0
	for _, line := range l.Lines {
		if line.Y > max {
			max = line.Y
		}
	}
	return max
}

// Render writes a PDF of the titled note into w.
//
// Markdown structure is not carried through: every heading, emphasis and code
// marker character is stripped, and each remaining line is word wrapped onto
// A4 pages. Blank lines advance half a line. A new page starts whenever the
// next line, title or body, would fall below BottomBound, so no text is ever
// clipped.
func Render(w io.Writer, title, markdown string) (*Layout, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetCreator("noteforge", true)

	var lay Layout
	pageWidth, _ := doc.GetPageSize()
	width := pageWidth - 2*Margin

	addPage := func() {
		doc.AddPage()
		lay.Pages++
	}
	addPage()

	doc.SetFont("Helvetica", "", TitleSize)
	doc.SetTextColor(titleColor[0], titleColor[1], titleColor[2])
	y := TitleTop
	for i, line := range wrap(doc, encode(title), width) {
		if i > 0 {
			y += TitleLead
		}
		if y > BottomBound {
			addPage()
			y = PageTop
		}
		doc.Text(Margin, y, line)
		lay.Lines = append(lay.Lines, Line{Page: lay.Pages, Y: y, Text: line, Title: true})
	}

	doc.SetFont("Helvetica", "", BodySize)
	doc.SetTextColor(bodyColor[0], bodyColor[1], bodyColor[2])
	y += BodyTop - TitleTop
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSuffix(notedown.StripDelimiters(line), "\r")
		if strings.TrimSpace(line) == "" {
			y += LineHeight / 2
			continue
		}
		for _, sub := range wrap(doc, encode(line), width) {
			if y > BottomBound {
				addPage()
				y = PageTop
			}
			doc.Text(Margin, y, sub)
			lay.Lines = append(lay.Lines, Line{Page: lay.Pages, Y: y, Text: sub})
			y += LineHeight
		}
	}

	if err := doc.Output(w); err != nil {
		return nil, fmt.Errorf("unable to write pdf: %w", err)
	}
	return &lay, nil
}

// wrap breaks text into lines no wider than width in the current font,
// between words where possible. Widths are measured over bytes, so text must
// already be encoded for the font.
func wrap(doc *gofpdf.Fpdf, text string, width float64) []string {
	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(text) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if doc.GetStringWidth(next) <= width {
			cur = next
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		// break overlong words wherever they overflow
		for doc.GetStringWidth(word) > width {
			n := 1
			for n < len(word) && doc.GetStringWidth(word[:n+1]) <= width {
				n++
			}
			lines = append(lines, word[:n])
			word = word[n:]
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// encode transcodes s into Windows-1252, the encoding of the core PDF fonts;
// runes outside it become '?'.
func encode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			sb.WriteByte(byte(r))
		} else if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
