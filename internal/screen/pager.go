package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/jcorbin/noteforge/notedown"
)

// Pager is a scrollable terminal view of a note.
//
// The last screen row is a status bar; every other row shows one layout line.
// Content is laid out again whenever the screen width changes.
type Pager struct {
	Header   *Header
	Footer   string
	Elements []Element

	lines  []Line
	width  int
	height int
	top    int
}

// NewPager creates a pager over elements.
func NewPager(elems []Element) *Pager {
	return &Pager{Elements: elems}
}

// Run draws the pager and handles events until the user quits or the screen
// is finalized. The screen must already be initialized.
func (p *Pager) Run(scr tcell.Screen) error {
	p.Resize(scr.Size())
	p.Draw(scr)
	for {
		switch ev := scr.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.Resize(ev.Size())
			scr.Sync()
		case *tcell.EventKey:
			if p.HandleKey(ev) {
				return nil
			}
		}
		p.Draw(scr)
	}
}

// Resize sets the screen size, laying out lines again if width changed.
func (p *Pager) Resize(width, height int) {
	if p.lines == nil || width != p.width {
		p.width = width
		p.layout()
	}
	p.height = height
	p.scroll(0)
}

func (p *Pager) layout() {
	var elems []Element
	if hdr := p.Header; hdr != nil {
		title := notedown.Block{Kind: notedown.Heading1, Spans: notedown.ParseInline(hdr.Topic)}
		elems = append(elems, Element{Key: -1, Kind: title.Kind, Spans: title.Spans})
		if stamp := hdr.Stamp(); stamp != "" {
			elems = append(elems, Element{Key: -1, Kind: notedown.Paragraph, Spans: []notedown.Span{{Text: stamp}}})
		}
		elems = append(elems, Element{Key: -1, Kind: notedown.Blank})
	}
	elems = append(elems, p.Elements...)
	if p.Footer != "" {
		elems = append(elems,
			Element{Key: -1, Kind: notedown.Blank},
			Element{Key: -1, Kind: notedown.Paragraph, Spans: []notedown.Span{{Text: p.Footer}}})
	}
	p.lines = Layout(elems, p.width)
}

// Lines returns the laid out lines.
func (p *Pager) Lines() []Line { return p.lines }

// Top returns the index of the first visible line.
func (p *Pager) Top() int { return p.top }

func (p *Pager) rows() int {
	if p.height > 1 {
		return p.height - 1
	}
	return 1
}

func (p *Pager) scroll(by int) {
	p.top += by
	if max := len(p.lines) - p.rows(); p.top > max {
		p.top = max
	}
	if p.top < 0 {
		p.top = 0
	}
}

// HandleKey applies a key press, returning true if the user asked to quit.
func (p *Pager) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.scroll(-1)
	case tcell.KeyDown, tcell.KeyEnter:
		p.scroll(1)
	case tcell.KeyPgUp:
		p.scroll(-p.rows())
	case tcell.KeyPgDn:
		p.scroll(p.rows())
	case tcell.KeyHome:
		p.top = 0
	case tcell.KeyEnd:
		p.scroll(len(p.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			p.scroll(-1)
		case 'j':
			p.scroll(1)
		case 'b':
			p.scroll(-p.rows())
		case ' ', 'f':
			p.scroll(p.rows())
		case 'g':
			p.top = 0
		case 'G':
			p.scroll(len(p.lines))
		}
	}
	return false
}

var (
	pagerBase    = tcell.StyleDefault
	pagerHeading = [4]tcell.Style{
		pagerBase,
		pagerBase.Bold(true).Underline(true).Foreground(hexColor(headingColor)),
		pagerBase.Bold(true).Foreground(hexColor(accentColor)),
		pagerBase.Bold(true).Underline(true),
	}
	pagerQuote  = pagerBase.Italic(true)
	pagerBar    = pagerBase.Foreground(hexColor(quoteColor))
	pagerMarker = pagerBase.Foreground(hexColor(accentColor))
	pagerStatus = pagerBase.Reverse(true)
)

func hexColor(s string) tcell.Color { return tcell.GetColor(s) }

func pagerStyle(kind notedown.Kind, style notedown.Style) tcell.Style {
	st := pagerBase
	switch kind {
	case notedown.Heading1, notedown.Heading2, notedown.Heading3:
		st = pagerHeading[kind-notedown.Heading1+1]
	case notedown.Blockquote:
		st = pagerQuote
	}
	switch style {
	case notedown.Bold:
		st = st.Bold(true)
	case notedown.Code:
		st = st.Foreground(hexColor(codeColor)).Background(hexColor(codeBackground))
	}
	return st
}

// Draw renders visible lines and the status bar.
func (p *Pager) Draw(scr tcell.Screen) {
	scr.Clear()
	rows := p.rows()
	for row := 0; row < rows && p.top+row < len(p.lines); row++ {
		line := p.lines[p.top+row]
		x := 0
		if line.Quote {
			x = p.put(scr, x, row, QuoteBar, pagerBar)
		}
		x = p.put(scr, x, row, line.Prefix, pagerMarker)
		for _, span := range line.Spans {
			x = p.put(scr, x, row, span.Text, pagerStyle(line.Kind, span.Style))
		}
	}
	p.drawStatus(scr, rows)
	scr.Show()
}

func (p *Pager) drawStatus(scr tcell.Screen, row int) {
	for x := 0; x < p.width; x++ {
		scr.SetContent(x, row, ' ', nil, pagerStatus)
	}
	x := 0
	if hdr := p.Header; hdr != nil {
		x = p.put(scr, x, row, " "+hdr.Subject+" ", pagerStatus.Bold(true))
		if hdr.Level != "" {
			badge := pagerBase.Bold(true).
				Foreground(tcell.ColorWhite).
				Background(hexColor(LevelColor(hdr.Level)))
			x = p.put(scr, x, row, " "+hdr.Badge()+" ", badge)
		}
	}
	last := p.top + p.rows()
	if last > len(p.lines) {
		last = len(p.lines)
	}
	pos := fmt.Sprintf(" %d-%d/%d  q quit ", p.top+1, last, len(p.lines))
	if w := runewidth.StringWidth(pos); p.width-w > x {
		x = p.width - w
	}
	p.put(scr, x, row, pos, pagerStatus)
}

// put draws s from column x, clipped to the screen width, returning the next
// column.
func (p *Pager) put(scr tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > p.width {
			break
		}
		scr.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
