package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/internal/soul"
	"github.com/keshon/kindred/pkg/cmd"
)

type WakeCommand struct{}

func (c *WakeCommand) Name() string        { return "wake" }
func (c *WakeCommand) Description() string { return "Wake up" }
func (c *WakeCommand) Aliases() []string   { return []string{} }

func (c *WakeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	rc.Session.Personality.OnInteraction(soul.QualityWarm)
	rc.Session.SetExpression("happy")
	fmt.Fprintln(rc.Out, "Good morning! :)")
	return nil
}

func init() {
	Register(&WakeCommand{})
}
