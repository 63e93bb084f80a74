// Package main provides the entry point for the assistant CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/interfaces/cli"
)

func main() {
	app := cli.New()

	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
