package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shopcore/cmd"
	"shopcore/config"
)

func main() {
	var (
		configPath   string
		useMockStore bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.BoolVar(&useMockStore, "mock", false, "Use in-memory persistence instead of MySQL")
	flag.Parse()

	if err := run(configPath, useMockStore); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, useMockStore bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := cmd.NewApp(cfg, useMockStore)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return app.Shutdown(context.Background())
	}
}
