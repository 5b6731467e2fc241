// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.DB != nil {
		logger.Info("closing postgres pool")
		if err := deps.DB.Close(); err != nil {
			logger.Error("postgres close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
