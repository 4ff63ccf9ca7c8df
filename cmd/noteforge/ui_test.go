package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/noteforge/internal/config"
	"github.com/jcorbin/noteforge/internal/history"
	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/internal/noteui"
)

func Test_ui(t *testing.T) {
	var gen fakeGenerator
	runUITest(t,
		time.Date(2020, 7, 23, 1, 2, 3, 0, time.UTC),
		&history.MemStore{},
		&gen,

		cmd(nil,
			"# Usage\n",
			"> noteforge [command args...]\n",
			"\n",
			"## Available Commands\n",
			"- dump    : print the parsed blocks of a note, for debugging\n",
			"- export  : save a note from history as a PDF or Word document\n",
			"- generate: generate notes on a topic, keeping them in history\n",
			"- help    : show help overview or on a specific topic or command\n",
			"- history : list recently generated notes, newest first\n",
			"- html    : print a note from history as an HTML fragment\n",
			"- show    : print a note from history\n",
			"- view    : page through a note from history in the terminal\n",
		),

		cmd([]string{"help", "generate"},
			regexp.MustCompile(`(?s)^# Usage\n> noteforge generate <subject> <topic> \[level\]\n.*`+
				`only the\n10 most recent notes are kept\.\n\n`+
				`Level is one of Beginner, Intermediate, Advanced; it defaults to Intermediate\.\n`)),

		cmd([]string{"help", "config"},
			regexp.MustCompile(`^# Configuration\nSettings are read from the first \.noteforge\.toml found`)),

		cmd([]string{"frob"}, "unrecognized command \"frob\"\n"),

		"empty history",
		cmd([]string{"history"}, "no notes yet\n"),
		cmd([]string{"history", "2"}, errors.New(`usage: noteforge history, unexpected argument "2"`)),
		cmd([]string{"show"}, errNoNotes),
		nil,

		"generate",
		cmd([]string{"generate", "Physics"},
			errors.New("usage: noteforge generate <subject> <topic> [level]")),
		cmd([]string{"generate", "Physics", "Optics", "expert"},
			errors.New(`invalid level "expert", want one of [Beginner Intermediate Advanced]`)),
		cmd([]string{"generate", "", "Optics"},
			errors.New("missing required field: subject")),
		expectGenerated(),

		cmd([]string{"generate", "Physics", "Optics"},
			"Physics  INTERMEDIATE \n",
			"Optics\n",
			"Generated Jul 23, 2020 1:02 AM\n",
			"\n",
			"Optics\n",
			"Key Concepts\n",
			"• Refraction bends light\n",
			"• n = c/v\n",
			"\n",
			"13 words\n",
		),
		expectGenerated(notegen.Request{Subject: "Physics", Topic: "Optics", Level: notegen.Intermediate}),
		expectTopics("Optics"),
		nil,

		"generation failure keeps history",
		notegen.GeneratorFunc(func(context.Context, notegen.Request) (string, error) {
			return "", &notegen.Error{Err: errors.New("quota exceeded")}
		}),
		cmd([]string{"generate", "Physics", "Waves"},
			"generation failed: quota exceeded\n",
			errors.New(notegen.Message)),
		expectTopics("Optics"),
		&gen,
		nil,

		2*time.Hour,
		cmd([]string{"generate", "Physics", "Waves", "beginner"},
			regexp.MustCompile(`^Physics  BEGINNER \nWaves\nGenerated Jul 23, 2020 3:02 AM\n`)),
		expectGenerated(
			notegen.Request{Subject: "Physics", Topic: "Optics", Level: notegen.Intermediate},
			notegen.Request{Subject: "Physics", Topic: "Waves", Level: notegen.Beginner},
		),
		expectTopics("Waves", "Optics"),

		cmd([]string{"history"},
			"1. Physics: Waves [Beginner], now\n",
			"2. Physics: Optics [Intermediate], 2 hours ago\n",
		),

		"show",
		cmd([]string{"show", "2"}, regexp.MustCompile(`^Physics  INTERMEDIATE \nOptics\n`)),
		cmd([]string{"show", "3"}, errors.New("no such history entry #3 (have 2)")),
		cmd([]string{"show", "x"}, errors.New(`usage: noteforge show [n], n must be a number, got "x"`)),
		cmd([]string{"html", "2"},
			regexp.MustCompile(`(?s)^<header class="note-header">.*<h1 id="note-title">Optics</h1>.*id="block-2".*</footer>`)),
		cmd([]string{"dump"}, regexp.MustCompile(`"Waves"`)),
		cmd([]string{"view", "2"}),
		expectViewTop("Optics"),
		nil,

		"export",
		cmd([]string{"export"}, errors.New("usage: noteforge export pdf|word [n]")),
		cmd([]string{"export", "rtf"}, errors.New(`unknown export format "rtf", want pdf or word`)),
		cmd([]string{"export", "pdf", "2"},
			regexp.MustCompile(`^saved .*Optics_Notes\.pdf \([0-9.]+ [kM]?B, 1 page\)\n$`)),
		expectExported("Optics_Notes.pdf", "%PDF-"),
		cmd([]string{"export", "word"},
			regexp.MustCompile(`^saved .*Waves_Notes\.docx \([0-9.]+ [kM]?B\)\n$`)),
		expectExported("Waves_Notes.docx", "PK"),
		nil,
	)
}

func Test_ui_limit(t *testing.T) {
	var gen fakeGenerator
	var ms history.MemStore
	var list history.List
	for i := history.Limit; i > 0; i-- {
		list = append(list, history.Entry{Subject: "S", Topic: fmt.Sprintf("T%d", i), Content: "x"})
	}
	require.NoError(t, history.Save(&ms, list))

	runUITest(t,
		time.Date(2020, 7, 23, 1, 2, 3, 0, time.UTC),
		&ms,
		&gen,
		expectTopics("T10", "T9", "T8", "T7", "T6", "T5", "T4", "T3", "T2", "T1"),
		cmd([]string{"generate", "S", "T11"}, regexp.MustCompile(`T11`)),
		expectTopics("T11", "T10", "T9", "T8", "T7", "T6", "T5", "T4", "T3", "T2"),
	)
}

type fakeGenerator struct {
	reqs []notegen.Request
}

func (gen *fakeGenerator) Generate(_ context.Context, req notegen.Request) (string, error) {
	gen.reqs = append(gen.reqs, req)
	return strings.Join([]string{
		"# " + req.Topic,
		"## Key Concepts",
		"- **Refraction** bends light",
		"- `n = c/v`",
	}, "\n"), nil
}

func runUITest(tt *testing.T, args ...interface{}) {
	var tc uiTestCompiler
	if step, err := tc.compile(args...); err != nil {
		require.NoError(tt, err)
	} else if step != nil {
		var t uiTestContext
		t.T = tt
		t.args = []string{"noteforge"}
		cfg := config.Default()
		cfg.Export.Dir = tt.TempDir()
		t.cfg = &cfg
		t.newScreen = func() (tcell.Screen, error) {
			return quitScreen{tcell.NewSimulationScreen(""), &t.viewTop}, nil
		}
		step.run(&t)
	}
}

func (tc *uiTestCompiler) compile(args ...interface{}) (uiTestStep, error) {
	for _, arg := range args {
		switch val := arg.(type) {
		// sub-test stack ops
		case string: // open a named sub-test
			tc.push(val)
		case nil: // close a named sub-test
			tc.pop()

		// add a step to the stack head
		case time.Time: // set the test clock
			tc.add(then(val))
		case time.Duration: // advance the test clock
			tc.add(elapse(val))
		case history.Store: // set note history storage
			tc.add(withStorage{val})
		case notegen.Generator: // set the note generator
			tc.add(withGenerator{val})
		case uiTestArgs: // auto-name toplevel commands
			if tc.head().name == "" {
				tc.add(named{fmt.Sprintf("cmd: %q", val.args), val})
			} else {
				tc.add(val)
			}
		case uiTestStep: // any piece of test logic
			tc.add(val)

		default:
			return nil, fmt.Errorf("invalid ui test arg type %T", val)
		}
	}
	return tc.fin(), nil
}

type uiTestContext struct {
	*testing.T
	now     time.Time
	viewTop string
	ui
}

type uiTestStep interface {
	run(t *uiTestContext)
}

type withStorage struct{ store history.Store }

func (ws withStorage) run(t *uiTestContext) {
	t.store = ws.store
}

type withGenerator struct{ gen notegen.Generator }

func (wg withGenerator) run(t *uiTestContext) {
	t.gen = wg.gen
}

type expectTopicList []string

func expectTopics(topics ...string) expectTopicList { return topics }

func (expect expectTopicList) run(t *uiTestContext) {
	list, err := history.Load(t.store)
	require.NoError(t, err, "must load history")
	var topics []string
	for _, e := range list {
		topics = append(topics, e.Topic)
	}
	assert.Equal(t, []string(expect), topics, "expected history topics")
}

type expectGeneratedReqs []notegen.Request

func expectGenerated(reqs ...notegen.Request) expectGeneratedReqs { return reqs }

func (expect expectGeneratedReqs) run(t *uiTestContext) {
	gen, ok := t.gen.(*fakeGenerator)
	require.True(t, ok, "expected a fake generator, have %T", t.gen)
	assert.Equal(t, []notegen.Request(expect), gen.reqs, "expected generation requests")
}

type exportedFile struct {
	name, magic string
}

func expectExported(name, magic string) exportedFile { return exportedFile{name, magic} }

func (expect exportedFile) run(t *uiTestContext) {
	data, err := os.ReadFile(filepath.Join(t.cfg.Export.Dir, expect.name))
	require.NoError(t, err, "must read exported file")
	assert.True(t, bytes.HasPrefix(data, []byte(expect.magic)),
		"expected %v to start with %q", expect.name, expect.magic)
}

type expectViewTop string

func (expect expectViewTop) run(t *uiTestContext) {
	assert.Equal(t, string(expect), t.viewTop, "expected first pager row")
}

// quitScreen is a simulation screen that asks to quit as soon as it is
// initialized, noting its first row when finalized.
type quitScreen struct {
	tcell.SimulationScreen
	top *string
}

func (qs quitScreen) Init() error {
	if err := qs.SimulationScreen.Init(); err != nil {
		return err
	}
	qs.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	return nil
}

func (qs quitScreen) Fini() {
	w, _ := qs.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := qs.GetContent(x, 0)
		sb.WriteRune(r)
	}
	*qs.top = strings.TrimRight(sb.String(), " ")
	qs.SimulationScreen.Fini()
}

type then time.Time
type elapse time.Duration

func (tm then) run(t *uiTestContext)  { t.now = time.Time(tm) }
func (d elapse) run(t *uiTestContext) { t.now = t.now.Add(time.Duration(d)) }

func cmd(args []string, expect ...interface{}) (ta uiTestArgs) {
	ta.args = args
	for _, e := range expect {
		switch v := e.(type) {
		case string:
			ta.output += v
		case *regexp.Regexp:
			ta.pattern = v
		case error:
			if ta.err != nil {
				panic("cmd already has an expected error ")
			}
			ta.err = v
		}
	}
	return ta
}

type uiTestArgs struct {
	args    []string
	output  string
	pattern *regexp.Regexp
	err     error
}

func (ta uiTestArgs) run(t *uiTestContext) {
	var out bytes.Buffer
	err := noteui.ArgsRequest(context.Background(), t.now, ta.args).Serve(&out, t)
	if ta.err != nil {
		assert.EqualError(t, err, ta.err.Error())
	} else {
		require.NoError(t, err, "unexpected error")
	}
	if ta.pattern != nil {
		assert.Regexp(t, ta.pattern, out.String(), "expected output")
	} else {
		assert.Equal(t, ta.output, out.String(), "expected output")
	}
}

type named struct {
	name string
	uiTestStep
}

func (n named) run(t *uiTestContext) {
	t.Run(n.name, func(tt *testing.T) {
		defer func(tt *testing.T) { t.T = tt }(t.T)
		t.T = tt
		n.uiTestStep.run(t)
	})
}

type uiTestSteps []uiTestStep

func (steps uiTestSteps) run(t *uiTestContext) {
	for _, step := range steps {
		if t.Failed() {
			break
		}
		step.run(t)
	}
}

func appendTestStep(a uiTestStep, bs ...uiTestStep) uiTestStep {
	steps, ok := a.(uiTestSteps)
	if !ok && a != nil {
		steps = uiTestSteps{a}
	}
	for _, b := range bs {
		if more, ok := b.(uiTestSteps); ok {
			steps = append(steps, more...)
		} else if b != nil {
			steps = append(steps, b)
		}
	}
	switch len(steps) {
	case 0:
		return nil
	case 1:
		return steps[0]
	default:
		return steps
	}
}

type uiTestCompiler struct {
	stack []named
}

func (tc *uiTestCompiler) head() named {
	if len(tc.stack) == 0 {
		return named{}
	}
	return tc.stack[len(tc.stack)-1]
}

func (tc *uiTestCompiler) add(step uiTestStep) {
	if i := len(tc.stack) - 1; i >= 0 {
		tc.stack[i].uiTestStep = appendTestStep(tc.stack[i].uiTestStep, step)
	} else {
		tc.stack = append(tc.stack, named{uiTestStep: step})
	}
}

func (tc *uiTestCompiler) push(name string) {
	tc.stack = append(tc.stack, named{name: name})
}

func (tc *uiTestCompiler) pop() bool {
	i := len(tc.stack) - 1
	if i < 1 {
		return false
	}
	head := tc.stack[i]
	tc.stack = tc.stack[:i]
	i--
	tc.add(head)
	return true
}

func (tc *uiTestCompiler) fin() uiTestStep {
	for tc.pop() {
	}
	if len(tc.stack) == 0 {
		return nil
	}
	ztep := tc.stack[0]
	tc.stack = tc.stack[:0]
	if ztep.name != "" {
		return ztep
	}
	return ztep.uiTestStep
}
