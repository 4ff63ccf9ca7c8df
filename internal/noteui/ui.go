/* Package noteui implements the request/response shape of noteforge commands.

A request is more-or-less free form user text, one command per line, with
space delimited (maybe quoted) args within. The initial use case is adapting
CLI args into a single command line; handlers read their args by scanning, and
write markdown-ish text into a buffered response.

*/
package noteui

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/jcorbin/noteforge/internal/noteutil"
)

// Handler is the interface implemented by pieces of user request handling
// logic.
type Handler interface {
	ServeUser(req *Request, resp *Response) error
}

// HandlerFunc is a functional adaptor for Handler.
type HandlerFunc func(req *Request, resp *Response) error

// ServeUser calls the receiver function pointer.
func (f HandlerFunc) ServeUser(req *Request, resp *Response) error { return f(req, resp) }

// Request represents a user request being handled, providing error tracking,
// the time of request, a cancellation context, and input tokenization.
type Request struct {
	ctx  context.Context
	err  error
	now  time.Time
	body io.Reader
	cmd  *bufio.Scanner
	arg  *bufio.Scanner
}

// Response represents a response being written by a Handler.
type Response struct {
	noteutil.WriteBuffer
}

// Break writes a blank line separator, unless nothing has been written yet.
func (resp *Response) Break() {
	if resp.Len() > 0 {
		resp.WriteString("\n")
	}
}

// CLIRequest builds an ArgsRequest from the current time and OS-provided args.
// Uses flag.Args() if flags have been parsed.
func CLIRequest(ctx context.Context) Request {
	now := time.Now()
	args := os.Args[1:]
	if flag.Parsed() {
		args = flag.Args()
	}
	return ArgsRequest(ctx, now, args)
}

// ArgsRequest builds a Request from a given time and argument strings.
func ArgsRequest(ctx context.Context, now time.Time, args []string) Request {
	var req Request
	req.ctx = ctx
	req.now = now
	req.body = bytes.NewReader(QuotedArgs(args))
	return req
}

// Serve runs the given handler with the receiver request and a new Response
// writing to the given writer.
// Returns any handler, request, or response error (in that order of precedence).
func (req Request) Serve(w io.Writer, handler Handler) (rerr error) {
	if err := req.err; err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = req.err
		}
	}()
	var resp Response
	resp.To = w
	defer func() {
		if ferr := resp.Flush(); rerr == nil {
			rerr = ferr
		}
	}()
	return handler.ServeUser(&req, &resp)
}

// Context returns the request's cancellation context.
func (req *Request) Context() context.Context {
	if req.ctx == nil {
		return context.Background()
	}
	return req.ctx
}

// Err returns any request scan error encountered.
func (req *Request) Err() error { return req.err }

// Now returns the time user submitted the request.
func (req *Request) Now() time.Time { return req.now }

// Scan scans the next user command from the body stream, preparing ScanArg state.
func (req *Request) Scan() bool {
	if req.err != nil {
		return false
	}
	if req.cmd == nil {
		if req.body == nil {
			return false
		}
		req.cmd = bufio.NewScanner(req.body)
		req.cmd.Split(bufio.ScanLines)
	}
	req.arg = nil
	if req.cmd.Scan() {
		return true
	}
	req.err = req.cmd.Err()
	return false
}

// ScanArg scans the next argument within the current user command scanned from body.
func (req *Request) ScanArg() bool {
	if req.err != nil {
		return false
	}
	if req.arg == nil {
		if req.cmd == nil && !req.Scan() {
			return false
		}
		req.arg = bufio.NewScanner(bytes.NewReader(req.cmd.Bytes()))
		req.arg.Split(scanArgs)
	}
	if req.arg.Scan() {
		return true
	}
	req.err = req.arg.Err()
	return false
}

// Args scans and returns all remaining arguments of the current command.
func (req *Request) Args() []string {
	var args []string
	for req.ScanArg() {
		args = append(args, req.Arg())
	}
	return args
}

// Command returns a string containing all current bytes scanned from body.
func (req *Request) Command() string {
	if req.cmd == nil {
		return ""
	}
	return req.cmd.Text()
}

// Arg returns a string containing the current argument
func (req *Request) Arg() string {
	if req.arg == nil {
		return ""
	}
	return unquoteArg(req.arg.Text())
}
