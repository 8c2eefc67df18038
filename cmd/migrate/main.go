// Command migrate applies pending schema migrations and exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"reservebook/internal/handler/middleware"
	"reservebook/internal/infra/db"
	"reservebook/internal/infra/migrate"
	"reservebook/internal/pkg/config"
)

const migrateTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	migrator, err := migrate.New(cfg, pool, logger)
	if err != nil {
		return err
	}
	schema := migrate.NewSchema(migrator, pool)

	applied, err := schema.Migrate(ctx)
	if err != nil {
		return err
	}
	tables, err := schema.Tables(ctx)
	if err != nil {
		return err
	}

	logger.Info("マイグレーション実行完了", "driver", cfg.Migration.Driver, "applied", applied, "tables", tables)
	return nil
}
