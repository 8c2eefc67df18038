package migrate

import (
	"context"
	"log/slog"

	"reservebook/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// AtlasMigrator delegates to the Atlas CLI. With an empty dirURL the embedded
// migration directory is materialized into a temporary working dir.
type AtlasMigrator struct {
	bin    string
	url    string
	dirURL string
	logger *slog.Logger
}

func NewAtlasMigrator(bin, databaseURL, dirURL string, logger *slog.Logger) *AtlasMigrator {
	if bin == "" {
		bin = "atlas"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AtlasMigrator{bin: bin, url: databaseURL, dirURL: dirURL, logger: logger}
}

func (m *AtlasMigrator) Migrate(ctx context.Context) (Result, error) {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(MigrationsFS()))
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "prepare atlas working dir"), errs.ErrMigrationFailed)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), m.bin)
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "init atlas client"), errs.ErrMigrationFailed)
	}

	params := &atlasexec.MigrateApplyParams{URL: m.url}
	if m.dirURL != "" {
		params.DirURL = m.dirURL
	}

	res, err := client.MigrateApply(ctx, params)
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "atlas migrate apply"), errs.ErrMigrationFailed)
	}

	result := Result{Applied: make([]string, 0, len(res.Applied))}
	for _, f := range res.Applied {
		result.Applied = append(result.Applied, f.Version)
		m.logger.Info("マイグレーション実行完了", "version", f.Version, "driver", DriverAtlas)
	}
	return result, nil
}
