package main

import (
	"log"

	_ "github.com/keshon/kindred/internal/command"
	"github.com/keshon/kindred/internal/docs"
	"github.com/keshon/kindred/pkg/cmd"
)

func main() {
	if err := docs.UpdateReadme(cmd.DefaultRegistry); err != nil {
		log.Fatalf("readme: %v", err)
	}
}
