package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type QueueCommand struct{}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show pending messages" }
func (c *QueueCommand) Aliases() []string   { return []string{"pending"} }

func (c *QueueCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	q := rc.Session.Offline.Queue
	if !q.HasPending() {
		fmt.Fprint(rc.Out, "\n  No pending offline interactions.\n\n")
		return nil
	}
	fmt.Fprintf(rc.Out, "\n  %d interactions queued while offline:\n", q.Len())
	fmt.Fprintln(rc.Out, q.Summary())
	fmt.Fprintln(rc.Out)
	return nil
}

func init() {
	Register(&QueueCommand{})
}
