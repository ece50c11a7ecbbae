// Package docs regenerates README.md from the live command registry,
// so the documented command list cannot drift from the code.
package docs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/kindred/pkg/cmd"
)

// UpdateReadme renders README.md.tmpl with the registered commands and
// writes README.md in the working directory.
func UpdateReadme(registry *cmd.Registry) error {
	var lines []string
	for _, c := range registry.GetAll() {
		line := fmt.Sprintf("- **/%s** — %s", c.Name(), c.Description())
		if a, ok := cmd.Root(c).(cmd.Aliaser); ok && len(a.Aliases()) > 0 {
			aliases := make([]string, 0, len(a.Aliases()))
			for _, alias := range a.Aliases() {
				aliases = append(aliases, "/"+alias)
			}
			line += fmt.Sprintf(" (also %s)", strings.Join(aliases, ", "))
		}
		lines = append(lines, line)
	}

	tmpl, err := template.ParseFiles("README.md.tmpl")
	if err != nil {
		return err
	}

	f, err := os.Create("README.md")
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct{ Commands string }{Commands: strings.Join(lines, "\n")}
	if err := tmpl.Execute(f, data); err != nil {
		return err
	}

	log.Println("[INFO] README.md updated with current commands")
	return nil
}
