package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jcorbin/noteforge/internal/history"
	"github.com/jcorbin/noteforge/internal/noteui"
)

func init() {
	builtinServer("history", serveHistory,
		"list recently generated notes, newest first")

	builtinHelpTopic("config", `# Configuration
Settings are read from the first {{ .Sess.ConfigFile }} found in the working
directory or any parent, falling back to the user config directory
(e.g. ~/.config/noteforge/config.toml).

    [gemini]
    api_key  = "..."                     # or GEMINI_API_KEY, API_KEY
    model    = "gemini-3-flash-preview"
    timeout  = "60s"

    [history]
    dir = "~/.local/share/noteforge"     # or NOTEFORGE_HISTORY_DIR

    [export]
    dir = "."
    span_accurate_word = false

    [screen]
    width = 80
`)
}

func serveHistory(sess *session, req *noteui.Request, res *noteui.Response) error {
	if req.ScanArg() {
		return fmt.Errorf("%w: %v, unexpected argument %q", errUsage, sess.Command(), req.Arg())
	}
	list, err := history.Load(sess.store)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(res, "no notes yet\n")
		return nil
	}
	for i, e := range list {
		fmt.Fprintf(res, "%v. %v: %v", i+1, e.Subject, e.Topic)
		if e.Level != "" {
			fmt.Fprintf(res, " [%v]", e.Level)
		}
		if !e.Timestamp.IsZero() {
			fmt.Fprintf(res, ", %v", humanize.RelTime(e.Timestamp, req.Now(), "ago", "from now"))
		}
		fmt.Fprintf(res, "\n")
	}
	return nil
}
