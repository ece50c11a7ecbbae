package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/internal/soul"
	"github.com/keshon/kindred/pkg/cmd"
)

type PokeCommand struct{}

func (c *PokeCommand) Name() string        { return "poke" }
func (c *PokeCommand) Description() string { return "Get attention" }
func (c *PokeCommand) Aliases() []string   { return []string{} }

func (c *PokeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	rc.Session.SetExpression("surprised")
	fmt.Fprintln(rc.Out, "Hey! *surprised* That tickles!")
	rc.Session.Personality.OnInteraction(soul.QualityWarm)
	rc.Session.Personality.OnPlayfulExchange()
	rc.Session.Idle.ResetTimer()
	fmt.Fprintln(rc.Out, "Hi there :)")
	return nil
}

func init() {
	Register(&PokeCommand{})
}
