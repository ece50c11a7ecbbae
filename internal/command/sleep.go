package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type SleepCommand struct{}

func (c *SleepCommand) Name() string        { return "sleep" }
func (c *SleepCommand) Description() string { return "Put to sleep" }
func (c *SleepCommand) Aliases() []string   { return []string{} }

func (c *SleepCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(rc.Out, "*yawns* Okay... resting now...")
	rc.Session.SetExpression("sleeping")
	fmt.Fprintln(rc.Out, "zzz...")
	return nil
}

func init() {
	Register(&SleepCommand{})
}
