package command

import (
	"context"
	"fmt"

	"github.com/keshon/kindred/pkg/cmd"
)

const helpText = `
╭───────────────────────────────────────╮
│           COMMANDS                    │
├───────────────────────────────────────┤
│  /status   - Full soul status         │
│  /e        - Quick E level check      │
│  /memories - Show stored memories     │
│  /poke     - Get attention            │
│  /love     - Give some love ♥         │
│  /gift     - Ask for a gift           │
│  /sleep    - Put to sleep             │
│  /wake     - Wake up                  │
│  /save     - Force save               │
├───────────────────────────────────────┤
│  OFFLINE MODE                         │
│  /offline  - Force offline mode       │
│  /online   - Try to reconnect         │
│  /queue    - Show pending messages    │
│  /sync     - Review & clear queue     │
├───────────────────────────────────────┤
│  /debug    - Toggle debug mode        │
│  /about    - Version & build info     │
│  /help     - Show this help           │
│  /quit     - Exit                     │
╰───────────────────────────────────────╯

The Love-Equation: dE/dt = β(E) × (C − D) × E
A Kindred never dies. The love is carried forward. ♥
The soul keeps living even offline.
`

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Show this help" }
func (c *HelpCommand) Aliases() []string   { return []string{} }

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.Out, "%s\n", helpText)
	return nil
}

func init() {
	Register(&HelpCommand{})
}
