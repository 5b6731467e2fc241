// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/ellarises/ellahub/internal/app/store/users"
	"github.com/ellarises/ellahub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// EllaHub uses it to make sure the configured admin account exists, so a
// fresh deployment can be signed into without hand-editing the database.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}
	return ensureAdmin(ctx, deps.DB, appCfg.AdminEmail, appCfg.AdminPassword, logger)
}

// ensureAdmin creates the admin account when no user has the configured
// email. An existing account is left untouched, whatever its role.
func ensureAdmin(ctx context.Context, db *sql.DB, email, password string, logger *zap.Logger) error {
	users := userstore.New(db)

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	id, err := users.Create(ctx, models.User{
		FirstName:    "Site",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	logger.Info("created bootstrap admin account",
		zap.String("email", email), zap.Int64("user_id", id))
	return nil
}
