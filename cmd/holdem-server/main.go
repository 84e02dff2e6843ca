package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/server"
)

var CLI struct {
	Config    string `short:"c" long:"config" default:"holdem-server.hcl" help:"Path to HCL configuration file"`
	Addr      string `short:"a" long:"addr" help:"Address to bind to (overrides config)"`
	Port      int    `short:"p" long:"port" help:"Port to listen on (overrides config)"`
	LogLevel  string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	StaticDir string `long:"static-dir" help:"Directory of lobby static assets (overrides config)"`
	Seed      int64  `long:"seed" help:"Deterministic shuffle seed (0 = time-based)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.Port != 0 {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.StaticDir != "" {
		cfg.Server.StaticDir = CLI.StaticDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = randutil.TimeSeed()
	}

	srv := server.New(cfg, logger, quartz.NewReal(), seed)

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig)
			os.Exit(0)
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", "error", err)
		ctx.Exit(1)
	}
}
