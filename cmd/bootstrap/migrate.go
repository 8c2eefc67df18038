package bootstrap

import (
	"context"
	"log/slog"

	"reservebook/internal/infra/migrate"
	"reservebook/internal/pkg/config"
	"reservebook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var MigrateModule = fx.Module("migrate",
	fx.Provide(
		NewMigrator,
		fx.Annotate(
			NewSchema,
			fx.As(new(shared.SchemaManager)),
		),
	),
	fx.Invoke(registerAutoMigrate),
)

func NewMigrator(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (migrate.Migrator, error) {
	return migrate.New(cfg, pool, logger)
}

func NewSchema(migrator migrate.Migrator, pool *pgxpool.Pool) *migrate.Schema {
	return migrate.NewSchema(migrator, pool)
}

// The hook is registered before the server's, so the schema is current before the first request.
func registerAutoMigrate(lc fx.Lifecycle, cfg config.Config, migrator migrate.Migrator, logger *slog.Logger) {
	if !cfg.App.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			res, err := migrator.Migrate(ctx)
			if err != nil {
				return err
			}
			logger.Info("マイグレーション実行完了", "driver", cfg.Migration.Driver, "applied", res.Applied)
			return nil
		},
	})
}
