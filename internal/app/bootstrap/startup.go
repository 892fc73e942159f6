// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/countdown"
)

// Background tickers started in Startup and stopped in Shutdown. They
// keep a live remaining-time string for each submission window and log
// the moment a window closes.
var (
	phase1Ticker *countdown.Ticker
	phase2Ticker *countdown.Ticker
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	phase1Ticker = countdown.NewTicker(appCfg.Phase1Deadline, logger.Named("phase1"))
	phase1Ticker.Start()
	phase2Ticker = countdown.NewTicker(appCfg.Phase2Deadline, logger.Named("phase2"))
	phase2Ticker.Start()

	logger.Info("submission windows configured",
		zap.String("phase1_deadline", appCfg.Phase1Deadline.Format(time.RFC3339)),
		zap.String("phase1_remaining", phase1Ticker.Current()),
		zap.String("phase2_deadline", appCfg.Phase2Deadline.Format(time.RFC3339)),
		zap.String("phase2_remaining", phase2Ticker.Current()))
	return nil
}
