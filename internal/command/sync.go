package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type SyncCommand struct{}

func (c *SyncCommand) Name() string        { return "sync" }
func (c *SyncCommand) Description() string { return "Review & clear queue" }
func (c *SyncCommand) Aliases() []string   { return []string{} }

func (c *SyncCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	q := rc.Session.Offline.Queue
	if !q.HasPending() {
		fmt.Fprint(rc.Out, "\n  Nothing to sync - queue is empty.\n\n")
		return nil
	}

	fmt.Fprintf(rc.Out, "\n  Offline Summary:\n%s\n", q.Summary())
	if rc.Confirm("\n  Clear queue and continue? (yes/no): ") {
		q.Clear()
		fmt.Fprint(rc.Out, "  Queue cleared. Fresh start!\n\n")
	}
	return nil
}

func init() {
	Register(&SyncCommand{})
}
