// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// ConnectDB opens the PostgreSQL pool and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db, err := sql.Open("pgx", appCfg.PostgresDSN)
	if err != nil {
		return DBDeps{}, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(appCfg.DBMaxOpenConns)
	db.SetMaxIdleConns(appCfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return DBDeps{}, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres")
	return DBDeps{DB: db}, nil
}

// EnsureSchema applies the embedded schema. Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS and friends) so this is safe to run on every
// start. The whole file is sent as one multi-statement exec; with no bind
// parameters the pgx driver uses the simple query protocol, which allows
// that.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if _, err := deps.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("database schema ensured")
	return nil
}
