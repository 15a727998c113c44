package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/skirmish/internal/config"
	skirmishmcp "github.com/peterkuimelis/skirmish/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	presets := flag.String("presets", cfg.Presets, "path to presets YAML file")
	flag.Parse()

	// stdout carries the MCP stream, so diagnostics go to stderr.
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer("skirmish", "1.0.0")
	skirmishmcp.RegisterTools(s, skirmishmcp.NewTools(*presets, logger))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
