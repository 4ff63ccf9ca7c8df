package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/jcorbin/noteforge/internal/config"
	"github.com/jcorbin/noteforge/internal/history"
	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/internal/noteui"
)

// session carries everything a command needs while serving one request.
type session struct {
	args []string
	mux  serveMux

	cfg   *config.Config
	store history.Store
	gen   notegen.Generator

	// renderer styles terminal text; nil leaves it to detection from the
	// response writer.
	renderer *lipgloss.Renderer

	newScreen func() (tcell.Screen, error)
}

type server interface {
	serve(*session, *noteui.Request, *noteui.Response) error
}

type helpServer interface {
	server
	describe() string
	help() server
}

type serverFunc func(*session, *noteui.Request, *noteui.Response) error

type serverHelp struct {
	server
	d string
	h server
}

func (fn serverFunc) serve(sess *session, req *noteui.Request, res *noteui.Response) error {
	return fn(sess, req, res)
}

func (sh serverHelp) describe() string { return sh.d }
func (sh serverHelp) help() server     { return sh.h }

func textServer(text string) tmplServer {
	tmpl := template.Must(template.New("").Parse(text))
	return tmplServer{tmpl}
}

type tmplServer struct {
	tmpl *template.Template
}

func (srv tmplServer) serve(sess *session, req *noteui.Request, res *noteui.Response) error {
	return srv.tmpl.Execute(res, struct {
		Sess *session
	}{sess})
}

type serveMux map[string]server

func (mux serveMux) handle(name string, srv server) {
	if mux[name] != nil {
		panic(fmt.Sprintf("%q server already defined", name))
	}
	mux[name] = srv
}

func (mux serveMux) helpTopic(name string, srv server) {
	topics, _ := mux[".helpTopics"].(serveMux)
	if topics[name] != nil {
		panic(fmt.Sprintf("%q topic already defined", name))
	}
	if topics == nil {
		topics = serveMux{}
		mux[".helpTopics"] = topics
	}
	topics[name] = srv
}

func (sess session) Command() string {
	return string(noteui.QuotedArgs(sess.args))
}

func (sess session) CommandHead() string {
	return sess.args[len(sess.args)-1]
}

func (sess session) Commands() []string {
	if sess.mux == nil {
		return nil
	}
	return sess.mux.Commands()
}

func (sess session) Describe(name string) string {
	if sess.mux == nil {
		return ""
	}
	return sess.mux.Describe(name)
}

func (sess session) Levels() []notegen.Level { return notegen.Levels }

func (sess session) DefaultLevel() notegen.Level { return notegen.DefaultLevel }

func (sess session) ConfigFile() string { return config.FileName }

func (mux serveMux) Commands() []string {
	var names []string
	for name := range mux {
		if name != "" && !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}
	if mux["help"] == nil {
		names = append(names, "help")
	}
	sort.Strings(names)
	return names
}

func (mux serveMux) Describe(name string) string {
	if hs, _ := mux[name].(helpServer); hs != nil {
		return hs.describe()
	}
	if name == "help" {
		return "show help overview or on a specific topic or command"
	}
	return ""
}

func (mux serveMux) helpTopics() serveMux {
	topics, _ := mux[".helpTopics"].(serveMux)
	return topics
}

func (mux serveMux) serve(sess *session, req *noteui.Request, res *noteui.Response) error {
	any := false
	for req.Scan() && req.ScanArg() {
		any = true
		if err := mux.serveCommand(sess, req, res); err != nil {
			return err
		}
	}
	if any {
		return nil
	}
	return mux.serveHelp(sess, req, res)
}

func (mux serveMux) serveCommand(sess *session, req *noteui.Request, res *noteui.Response) error {
	name := req.Arg()
	sess.args = append(sess.args[:len(sess.args):len(sess.args)], name)
	sess.mux = mux

	cmd := mux[name]
	if cmd != nil {
		return cmd.serve(sess, req, res)
	}
	if name == "help" {
		return mux.serveHelp(sess, req, res)
	}
	fmt.Fprintf(res, "unrecognized command %q\n", name)
	return nil
}

func (mux serveMux) serveHelp(sess *session, req *noteui.Request, res *noteui.Response) error {
	var name string
	if req.ScanArg() {
		name = req.Arg()
	}

	srv := mux.helpTopics()[name]
	if srv == nil {
		if hs, ok := mux[name].(helpServer); ok {
			srv = hs.help()
		}
	}

	if srv != nil {
		return srv.serve(sess, req, res)
	}

	if name != "" {
		fmt.Fprintf(res, "> %s %s\nno help available\n", sess.Command(), name)
		return nil
	}

	fmt.Fprintf(res, "# Usage\n")
	if sess.CommandHead() != "help" {
		fmt.Fprintf(res, "> %s [command args...]\n", sess.Command())
	} else if topics := mux.helpTopics(); len(topics) > 0 {
		fmt.Fprintf(res, "> %s [topic|command]\n", sess.Command())
		fmt.Fprintf(res, "\n## Available Help Topics\n")
		printAvail(res, topics)
	} else {
		fmt.Fprintf(res, "> %s [command]\n", sess.Command())
	}

	fmt.Fprintf(res, "\n## Available Commands\n")
	printAvail(res, sess)

	return nil
}

type commandList interface {
	Commands() []string
	Describe(string) string
}

func printAvail(w io.Writer, cl commandList) {
	names := cl.Commands()
	width := 0
	for _, name := range names {
		if width < len(name) {
			width = len(name)
		}
	}
	for _, name := range names {
		if name != "" {
			if desc := cl.Describe(name); desc != "" {
				fmt.Fprintf(w, "- % -*s: %s\n", width, name, desc)
			} else {
				fmt.Fprintf(w, "- %s\n", name)
			}
		}
	}
}

func serve(srv interface{}, args ...interface{}) (actual server) {
	switch val := srv.(type) {
	case server:
		actual = val
	case func(*session, *noteui.Request, *noteui.Response) error:
		actual = serverFunc(val)
	case string:
		actual = textServer(val)
	default:
		panic(fmt.Sprintf("unsupported serve base arg type %T", srv))
	}
	for _, arg := range args {
		switch val := arg.(type) {
		case string:
			hs, hadHelp := actual.(serverHelp)
			if !hadHelp {
				hs.server = actual
			}
			if hs.d == "" {
				hs.d = val
			} else if hs.h == nil {
				hs.h = textServer(val)
			} else {
				panic("server already has both a description and help")
			}
			actual = hs
		}
	}
	return actual
}

var builtins []func(mux serveMux)

func builtinServer(name string, srv interface{}, args ...interface{}) {
	actual := serve(srv, args...)
	builtins = append(builtins, func(mux serveMux) {
		mux.handle(name, actual)
	})
}

func builtinHelpTopic(name string, srv interface{}) {
	actual := serve(srv)
	builtins = append(builtins, func(mux serveMux) {
		mux.helpTopic(name, actual)
	})
}

type ui struct {
	session
}

func (ui *ui) init() error {
	if ui.cfg == nil {
		path, err := config.Path()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		ui.cfg = &cfg
	}

	if ui.store == nil {
		ui.store = history.FileStore{Dir: ui.cfg.History.Dir}
	}

	if ui.newScreen == nil {
		ui.newScreen = tcell.NewScreen
	}

	if ui.mux == nil {
		ui.mux = make(serveMux)
		for _, addBuiltin := range builtins {
			addBuiltin(ui.mux)
		}
	}

	return nil
}

func (ui *ui) ServeUser(req *noteui.Request, res *noteui.Response) error {
	defer logs.restore()()
	logs.setOutput(res).setFlags(0).setPrefix("")

	if ui.mux == nil {
		if err := ui.init(); err != nil {
			return err
		}
	}

	sess := ui.session
	return ui.mux.serve(&sess, req, res)
}

// generator returns the configured note generator, creating a Gemini client
// on first use.
func (sess *session) generator(ctx context.Context) (notegen.Generator, error) {
	if sess.gen != nil {
		return sess.gen, nil
	}
	gem, err := notegen.NewGemini(ctx, sess.cfg.GeminiConfig())
	if err != nil {
		return nil, fmt.Errorf("%w; set GEMINI_API_KEY, or gemini.api_key in %v", err, config.FileName)
	}
	sess.gen = gem
	return gem, nil
}
