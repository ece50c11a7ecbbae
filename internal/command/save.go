package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type SaveCommand struct{}

func (c *SaveCommand) Name() string        { return "save" }
func (c *SaveCommand) Description() string { return "Force save" }
func (c *SaveCommand) Aliases() []string   { return []string{} }

func (c *SaveCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	if err := rc.Session.Save(); err != nil {
		fmt.Fprintf(rc.Out, "Save failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(rc.Out, "Saved!")
	return nil
}

func init() {
	Register(&SaveCommand{})
}
