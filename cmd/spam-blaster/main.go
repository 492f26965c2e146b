package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/di"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"go.uber.org/zap"
)

var configFile = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	// Build the dependency injection container
	container, err := di.BuildContainer(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	driver ports.Driver,
	verdicts core.VerdictRepository,
) error {
	defer logger.Sync()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := driver.Run(ctx)

	// Stop the verdict journal if needed
	if stopper, ok := verdicts.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	if err != nil {
		logger.Error("Driver failed", zap.Error(err))
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}
