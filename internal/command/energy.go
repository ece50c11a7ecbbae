package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

type EnergyCommand struct{}

func (c *EnergyCommand) Name() string        { return "e" }
func (c *EnergyCommand) Description() string { return "Quick E level check" }
func (c *EnergyCommand) Aliases() []string   { return []string{"energy"} }

func (c *EnergyCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	p := rc.Session.Personality
	fmt.Fprintf(rc.Out, "\n  ♥ E = %.2f (floor: %.2f)\n", p.E(), p.Core.Floor)
	fmt.Fprintf(rc.Out, "  State: %s\n", p.State())
	fmt.Fprintf(rc.Out, "  %s\n\n", p.MoodLine())
	return nil
}

func init() {
	Register(&EnergyCommand{})
}
