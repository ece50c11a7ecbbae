package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type DebugCommand struct{}

func (c *DebugCommand) Name() string        { return "debug" }
func (c *DebugCommand) Description() string { return "Toggle debug mode" }
func (c *DebugCommand) Aliases() []string   { return []string{} }

func (c *DebugCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	if rc.Session.ToggleDebug() {
		fmt.Fprintln(rc.Out, "Debug: on")
	} else {
		fmt.Fprintln(rc.Out, "Debug: off")
	}
	return nil
}

func init() {
	Register(&DebugCommand{})
}
