// Package command holds the interactive commands of the companion CLI.
// Each command lives in its own file and registers itself from init(),
// so importing the package for side effects populates the registry.
package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/keshon/kindred/internal/soul"
	"github.com/keshon/kindred/pkg/cmd"
)

// ErrQuit tells the REPL to stop reading input and shut down.
var ErrQuit = errors.New("quit")

// Context is the REPL payload carried in Invocation.Data: the live
// session plus the streams a command talks through. Lines is the REPL's
// own input channel; commands that need a follow-up answer receive from
// it instead of reading the terminal directly, which would race with
// the REPL reader.
type Context struct {
	Session *soul.Session
	Lines   <-chan string
	Out     io.Writer
}

// Confirm prints the prompt and waits for the next input line. It
// reports whether the user answered yes.
func (c *Context) Confirm(prompt string) bool {
	fmt.Fprint(c.Out, prompt)
	line, ok := <-c.Lines
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// FromInvocation extracts the REPL context from an invocation.
func FromInvocation(inv *cmd.Invocation) (*Context, error) {
	c, ok := inv.Data.(*Context)
	if !ok {
		return nil, fmt.Errorf("wrong context type")
	}
	return c, nil
}

// Register adds a command to the default registry.
func Register(c cmd.Command) {
	cmd.DefaultRegistry.Register(c)
}
