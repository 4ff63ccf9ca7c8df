package noteui_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/noteforge/internal/noteui"
)

func TestArgsRequest(t *testing.T) {
	for _, tc := range []struct {
		name string
		now  time.Time
		args []string
		out  []string
	}{
		{
			name: "nothing",
			now:  time.Date(2025, 8, 6, 7, 5, 3, 0, time.UTC),
			out: []string{
				"now: 2025-08-06T07:05:03Z",
				"",
			},
		},

		{
			name: "some args",
			now:  time.Date(2025, 8, 6, 7, 5, 3, 0, time.UTC),
			args: []string{"generate", "Mechanical Engineering", "Engine Assembly Workflow"},
			out: []string{
				"now: 2025-08-06T07:05:03Z",
				"",
				`1) command: "generate \"Mechanical Engineering\" \"Engine Assembly Workflow\""`,
				`  1. arg: "generate"`,
				`  2. arg: "Mechanical Engineering"`,
				`  3. arg: "Engine Assembly Workflow"`,
				"",
			},
		},

		{
			name: "awkward args",
			now:  time.Date(2025, 8, 6, 7, 5, 3, 0, time.UTC),
			args: []string{"", `say "hi"`, "it's", "two\nlines"},
			out: []string{
				"now: 2025-08-06T07:05:03Z",
				"",
				`1) command: "\"\" \"say \\\"hi\\\"\" \"it's\" \"two\\nlines\""`,
				`  1. arg: ""`,
				`  2. arg: "say \"hi\""`,
				`  3. arg: "it's"`,
				`  4. arg: "two\nlines"`,
				"",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := ArgsRequest(context.Background(), tc.now, tc.args).Serve(&out, HandlerFunc(dumpRequest))
			require.NoError(t, err)
			assert.Equal(t, tc.out, strings.Split(out.String(), "\n"), "expected output")
		})
	}
}

func TestRequest_Serve_handlerError(t *testing.T) {
	var out bytes.Buffer
	err := ArgsRequest(context.Background(), time.Now(), nil).Serve(&out, HandlerFunc(func(req *Request, resp *Response) error {
		resp.WriteString("partial\n")
		return fmt.Errorf("nope")
	}))
	assert.EqualError(t, err, "nope")
	assert.Equal(t, "partial\n", out.String(), "response is still flushed")
}

func dumpRequest(req *Request, resp *Response) error {
	fmt.Fprintf(resp, "now: %v\n", req.Now().Format(time.RFC3339))
	for i := 1; req.Scan(); i++ {
		fmt.Fprintf(resp, "\n%v) command: %q\n", i, req.Command())
		for j := 1; req.ScanArg(); j++ {
			fmt.Fprintf(resp, "  %v. arg: %q\n", j, req.Arg())
		}
	}
	return nil
}
