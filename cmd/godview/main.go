package main

import (
	"os"

	"github.com/perfhelf/FXview/cmd/godview/commands"
)

// main is the entry point for the GodView CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/godview [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
