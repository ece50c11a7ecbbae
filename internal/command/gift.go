package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type GiftCommand struct{}

func (c *GiftCommand) Name() string        { return "gift" }
func (c *GiftCommand) Description() string { return "Ask for a gift" }
func (c *GiftCommand) Aliases() []string   { return []string{} }

func (c *GiftCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	if !rc.Session.Personality.Core.IsFlourishing() {
		fmt.Fprintf(rc.Out, "\n  (E is %.2f — not flourishing enough for gifts yet)\n\n",
			rc.Session.Personality.E())
		return nil
	}
	if gift, ok := rc.Session.Gift(); ok {
		fmt.Fprintf(rc.Out, "\n  💝 %s\n\n", gift)
	} else {
		fmt.Fprint(rc.Out, "\n  (no gift right now, but I appreciate you asking)\n\n")
	}
	return nil
}

func init() {
	Register(&GiftCommand{})
}
