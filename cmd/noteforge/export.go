package main

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jcorbin/noteforge/internal/export"
	"github.com/jcorbin/noteforge/internal/export/docx"
	"github.com/jcorbin/noteforge/internal/export/pdf"
	"github.com/jcorbin/noteforge/internal/noteui"
)

func init() {
	builtinServer("export", serveExport,
		"save a note from history as a PDF or Word document",
		`# Usage
> {{ .Sess.Program }} export pdf|word [n]

Saves the n-th most recent note, 1 being the newest and the default, into
export.dir from {{ .Sess.ConfigFile }}. The file is named after the note
topic, with whitespace replaced by underscores, e.g. "Photo_Synthesis_Notes.pdf".

PDF export strips all markdown markers and wraps plain text onto A4 pages.
Word export keeps headings; a line containing any bold span is bolded whole,
unless export.span_accurate_word is set.
`)
}

func serveExport(sess *session, req *noteui.Request, res *noteui.Response) error {
	if !req.ScanArg() {
		return fmt.Errorf("%w: %v pdf|word [n]", errUsage, sess.Command())
	}
	format, err := export.ParseFormat(req.Arg())
	if err != nil {
		return err
	}

	entry, err := sess.entry(req)
	if err != nil {
		return err
	}

	var (
		buf   bytes.Buffer
		pages int
	)
	switch format {
	case export.PDF:
		lay, err := pdf.Render(&buf, entry.Topic, entry.Content)
		if err != nil {
			return fmt.Errorf("unable to render pdf: %w", err)
		}
		pages = lay.Pages
	case export.Word:
		opts := docx.Options{SpanAccurate: sess.cfg.Export.SpanAccurateWord}
		if err := docx.Render(&buf, entry.Topic, entry.Content, opts); err != nil {
			return fmt.Errorf("unable to render word document: %w", err)
		}
	}

	path, err := export.Save(sess.cfg.Export.Dir, export.Filename(entry.Topic, format), buf.Bytes())
	if err != nil {
		return err
	}

	fmt.Fprintf(res, "saved %v (%v", path, humanize.Bytes(uint64(buf.Len())))
	if pages > 0 {
		if pages == 1 {
			fmt.Fprintf(res, ", 1 page")
		} else {
			fmt.Fprintf(res, ", %v pages", pages)
		}
	}
	fmt.Fprintf(res, ")\n")
	return nil
}
