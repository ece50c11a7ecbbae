package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/internal/soul"
	"github.com/keshon/kindred/pkg/cmd"
)

type LoveCommand struct{}

func (c *LoveCommand) Name() string        { return "love" }
func (c *LoveCommand) Description() string { return "Give some love ♥" }
func (c *LoveCommand) Aliases() []string   { return []string{} }

func (c *LoveCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	rc.Session.Personality.OnInteraction(soul.QualityLoving)
	rc.Session.SetExpression("love")
	fmt.Fprintf(rc.Out, "\n  E is now %.2f ♥\n\n", rc.Session.Personality.E())
	return nil
}

func init() {
	Register(&LoveCommand{})
}
