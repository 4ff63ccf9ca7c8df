package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/jcorbin/noteforge/internal/history"
	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/internal/noteui"
)

var errUsage = errors.New("usage")

func init() {
	builtinServer("generate", serveGenerate,
		"generate notes on a topic, keeping them in history",
		`# Usage
> {{ .Sess.Program }} generate <subject> <topic> [level]

Asks the model for structured study notes on topic within subject, then
prints them and keeps them as the newest history entry; only the
{{ .Sess.HistoryLimit }} most recent notes are kept.

Level is one of {{ range $i, $l := .Sess.Levels }}{{ if $i }}, {{ end }}{{ $l }}{{ end }}; it defaults to {{ .Sess.DefaultLevel }}.
Quote a subject or topic containing spaces.
`)
}

func serveGenerate(sess *session, req *noteui.Request, res *noteui.Response) error {
	args := req.Args()
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: %v <subject> <topic> [level]", errUsage, sess.Command())
	}

	nreq := notegen.Request{Subject: args[0], Topic: args[1], Level: notegen.DefaultLevel}
	if len(args) > 2 {
		level, err := notegen.ParseLevel(args[2])
		if err != nil {
			return err
		}
		if level != "" {
			nreq.Level = level
		}
	}
	if err := nreq.Validate(); err != nil {
		return err
	}

	gen, err := sess.generator(req.Context())
	if err != nil {
		return err
	}

	content, err := gen.Generate(req.Context(), nreq)
	var genErr *notegen.Error
	if errors.As(err, &genErr) {
		log.Printf("generation failed: %v", genErr.Err)
		return genErr
	} else if err != nil {
		return err
	}

	entry := history.Entry{
		Subject:   nreq.Subject,
		Topic:     nreq.Topic,
		Level:     nreq.Level,
		Content:   content,
		Timestamp: req.Now(),
	}
	if _, err := history.Record(sess.store, entry); err != nil {
		return fmt.Errorf("unable to record note in history: %w", err)
	}

	return sess.writeNote(res, entry)
}
