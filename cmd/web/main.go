package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", cfg.WebPort, "HTTP port to listen on")
	presets := flag.String("presets", cfg.Presets, "path to presets YAML file")
	seed := flag.Int64("seed", cfg.Seed, "seed for matches joined without a preset; 0 for random")
	flag.Parse()

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(*presets, *seed, logger)
	defer srv.Close()

	addr := fmt.Sprintf(":%d", *port)
	logger.Infof("skirmish web server listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
