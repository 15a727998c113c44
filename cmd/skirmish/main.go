package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "play":
		err = runPlay(ctx, cfg, os.Args[2:])
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  skirmish play [--preset N] [--presets FILE] [--seed S]")
	fmt.Println("  skirmish host [--port P] [--presets FILE] [--seed S]")
	fmt.Println("  skirmish join [--preset N] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play against the computer in this terminal")
	fmt.Println("  host    Serve matches to players who join over TCP")
	fmt.Println("  join    Connect to a host and play")
	fmt.Println()
	fmt.Println("Flags default to SKIRMISH_* environment variables.")
}

func newLogger(cfg config.Config, level string) (*logrus.Logger, error) {
	cfg.LogLevel = level
	return cfg.NewLogger(os.Stderr)
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	preset := fs.Int("preset", 0, "preset number to use (from the presets file); 0 for a 6x6 board")
	presets := fs.String("presets", cfg.Presets, "path to presets file")
	seed := fs.Int64("seed", cfg.Seed, "seed for dealing and the opponent; 0 for random")
	level := fs.String("log-level", "warn", "diagnostics level")
	fs.Parse(args)

	logger, err := newLogger(cfg, *level)
	if err != nil {
		return err
	}
	srv := &skirmishnet.Server{
		PresetFile: *presets,
		Defaults:   game.MatchConfig{Seed: *seed},
		Logger:     logger,
	}
	fmt.Println("Open one of your cards and one of the opponent's each turn: p X Y / o X Y. Type help for commands.")
	return skirmishnet.PlayLocal(ctx, srv, *preset, os.Stdin, os.Stdout)
}

func runHost(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", cfg.Port, "TCP port to listen on")
	presets := fs.String("presets", cfg.Presets, "path to presets file")
	seed := fs.Int64("seed", cfg.Seed, "seed for matches joined without a preset; 0 for random")
	level := fs.String("log-level", cfg.LogLevel, "diagnostics level")
	fs.Parse(args)

	logger, err := newLogger(cfg, *level)
	if err != nil {
		return err
	}
	srv := &skirmishnet.Server{
		PresetFile: *presets,
		Port:       *port,
		Defaults:   game.MatchConfig{Seed: *seed},
		Logger:     logger,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	preset := fs.Int("preset", 0, "preset number to play (from the host's presets file)")
	addr := fs.String("addr", cfg.Addr, "server address to connect to")
	fs.Parse(args)

	return skirmishnet.Connect(ctx, *addr, *preset)
}
