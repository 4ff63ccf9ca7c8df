package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jcorbin/noteforge/internal/history"
	"github.com/jcorbin/noteforge/internal/noteui"
	"github.com/jcorbin/noteforge/internal/screen"
	"github.com/jcorbin/noteforge/notedown"
)

var errNoNotes = errors.New("no notes yet, try the generate command")

func (sess session) Program() string { return sess.args[0] }

func (sess session) HistoryLimit() int { return history.Limit }

// entry scans an optional 1-based history index argument, defaulting to the
// newest note, and loads that entry.
func (sess *session) entry(req *noteui.Request) (history.Entry, error) {
	n := 1
	if req.ScanArg() {
		i, err := strconv.Atoi(req.Arg())
		if err != nil {
			return history.Entry{}, fmt.Errorf("%w: %v [n], n must be a number, got %q",
				errUsage, sess.Command(), req.Arg())
		}
		n = i
	}
	if req.ScanArg() {
		return history.Entry{}, fmt.Errorf("%w: %v [n], unexpected argument %q",
			errUsage, sess.Command(), req.Arg())
	}

	list, err := history.Load(sess.store)
	if err != nil {
		return history.Entry{}, err
	}
	if len(list) == 0 {
		return history.Entry{}, errNoNotes
	}
	return list.Get(n)
}

func noteHeader(entry history.Entry) *screen.Header {
	return &screen.Header{
		Subject: entry.Subject,
		Topic:   entry.Topic,
		Level:   entry.Level,
		Time:    entry.Timestamp,
	}
}

func noteElements(entry history.Entry) []screen.Element {
	return screen.Render(notedown.Parse(entry.Content))
}

// writeNote prints entry as styled text with its header and word count.
func (sess *session) writeNote(res *noteui.Response, entry history.Entry) error {
	return screen.Text{
		Width:    sess.cfg.Screen.Width,
		Renderer: sess.renderer,
		Header:   noteHeader(entry),
		Footer:   screen.WordCount(entry.Content),
	}.Write(res, noteElements(entry))
}
