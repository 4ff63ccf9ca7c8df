package main

import (
	"github.com/k0kubun/pp"

	"github.com/jcorbin/noteforge/internal/noteui"
	"github.com/jcorbin/noteforge/internal/screen"
	"github.com/jcorbin/noteforge/notedown"
)

func init() {
	builtinServer("show", serveShow,
		"print a note from history",
		`# Usage
> {{ .Sess.Program }} show [n]

Prints the n-th most recent note, 1 being the newest and the default.
Lines wrap to screen.width columns from {{ .Sess.ConfigFile }}.
`)

	builtinServer("view", serveView,
		"page through a note from history in the terminal",
		`# Usage
> {{ .Sess.Program }} view [n]

Opens the n-th most recent note in a full screen pager.

## Keys
- up, k            : scroll up a line
- down, j, enter   : scroll down a line
- page up, b       : scroll up a page
- page down, space : scroll down a page
- home, g          : jump to the top
- end, G           : jump to the bottom
- q, escape        : quit
`)

	builtinServer("html", serveHTML,
		"print a note from history as an HTML fragment",
		`# Usage
> {{ .Sess.Program }} html [n]

Writes the n-th most recent note as an HTML fragment; every block carries a
stable "block-N" id.
`)

	builtinServer("dump", serveDump,
		"print the parsed blocks of a note, for debugging",
		`# Usage
> {{ .Sess.Program }} dump [n]

Pretty prints the block list parsed from the n-th most recent note.
`)
}

func serveShow(sess *session, req *noteui.Request, res *noteui.Response) error {
	entry, err := sess.entry(req)
	if err != nil {
		return err
	}
	return sess.writeNote(res, entry)
}

func serveView(sess *session, req *noteui.Request, res *noteui.Response) error {
	entry, err := sess.entry(req)
	if err != nil {
		return err
	}

	scr, err := sess.newScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()

	pager := screen.NewPager(noteElements(entry))
	pager.Header = noteHeader(entry)
	pager.Footer = screen.WordCount(entry.Content)
	return pager.Run(scr)
}

func serveHTML(sess *session, req *noteui.Request, res *noteui.Response) error {
	entry, err := sess.entry(req)
	if err != nil {
		return err
	}
	return screen.HTML{
		Header: noteHeader(entry),
		Footer: screen.WordCount(entry.Content),
	}.Write(res, noteElements(entry))
}

func serveDump(sess *session, req *noteui.Request, res *noteui.Response) error {
	entry, err := sess.entry(req)
	if err != nil {
		return err
	}
	pp.ColoringEnabled = false
	_, err = pp.Fprintln(res, notedown.Parse(entry.Content))
	return err
}
