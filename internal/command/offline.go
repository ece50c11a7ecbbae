package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type OfflineCommand struct{}

func (c *OfflineCommand) Name() string        { return "offline" }
func (c *OfflineCommand) Description() string { return "Force offline mode" }
func (c *OfflineCommand) Aliases() []string   { return []string{} }

func (c *OfflineCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	rc.Session.Offline.ForceOffline()
	fmt.Fprint(rc.Out, "\n  Forced OFFLINE mode. Use /online to reconnect.\n\n")
	return nil
}

func init() {
	Register(&OfflineCommand{})
}
