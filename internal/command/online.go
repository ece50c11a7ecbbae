package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type OnlineCommand struct{}

func (c *OnlineCommand) Name() string        { return "online" }
func (c *OnlineCommand) Description() string { return "Try to reconnect" }
func (c *OnlineCommand) Aliases() []string   { return []string{} }

func (c *OnlineCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	rc.Session.Offline.ForceOnline()
	fmt.Fprint(rc.Out, "\n  Attempting to go ONLINE...\n\n")
	return nil
}

func init() {
	Register(&OnlineCommand{})
}
