package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Full soul status" }
func (c *StatusCommand) Aliases() []string   { return []string{"mood", "soul"} }

func (c *StatusCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(rc.Out, rc.Session.Personality.StatusDisplay())
	return nil
}

func init() {
	Register(&StatusCommand{})
}
