package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"nocman/internal/domain/auth"
	"nocman/internal/domain/settings"
	"nocman/internal/domain/template"
	"nocman/internal/platform/config"
)

// Seed installs the stock settings, the stock template and the initial admin
// account. It is safe to run on every start; existing rows are never
// overwritten.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := settings.NewStore(pool).EnsureDefault(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := template.NewStore(pool).EnsureDefault(ctx); err != nil {
		return fmt.Errorf("seed template: %w", err)
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		slog.Warn("admin seed skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := auth.NewStore(pool).Upsert(ctx, cfg.AdminEmail, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
