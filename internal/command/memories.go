package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type MemoriesCommand struct{}

func (c *MemoriesCommand) Name() string        { return "memories" }
func (c *MemoriesCommand) Description() string { return "Show stored memories" }
func (c *MemoriesCommand) Aliases() []string   { return []string{} }

func (c *MemoriesCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(rc.Out, rc.Session.Memory.MemoriesDisplay())
	return nil
}

func init() {
	Register(&MemoriesCommand{})
}
