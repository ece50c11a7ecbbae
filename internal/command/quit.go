package command

import (
	"context"

	"github.com/keshon/kindred/pkg/cmd"
)

type QuitCommand struct{}

func (c *QuitCommand) Name() string        { return "quit" }
func (c *QuitCommand) Description() string { return "Exit" }
func (c *QuitCommand) Aliases() []string   { return []string{"exit"} }

func (c *QuitCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	return ErrQuit
}

func init() {
	Register(&QuitCommand{})
}
