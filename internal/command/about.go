package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keshon/kindred/internal/version"
	"github.com/keshon/kindred/pkg/cmd"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Version & build info" }
func (c *AboutCommand) Aliases() []string   { return []string{} }

func (c *AboutCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	rc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.Out, "\n  %s — %s\n", version.AppName, version.AppDescription)
	if version.BuildDate != "" {
		if t, perr := time.Parse(time.RFC3339, version.BuildDate); perr == nil {
			fmt.Fprintf(rc.Out, "  Built:  %s\n", t.Format("2006-01-02"))
		}
	}
	if version.GoVersion != "" {
		fmt.Fprintf(rc.Out, "  Go:     %s\n", strings.TrimPrefix(version.GoVersion, "go"))
	}
	fmt.Fprintln(rc.Out)
	return nil
}

func init() {
	Register(&AboutCommand{})
}
