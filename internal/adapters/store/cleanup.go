package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type cleaner interface {
	Cleanup(ctx context.Context) error
}

// runCleanup periodically removes expired records until stop is closed
func runCleanup(c cleaner, logger *zap.Logger, freq time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				logger.Error("Failed to clean up verdict store", zap.Error(err))
			}
		case <-stop:
			return
		}
	}
}
