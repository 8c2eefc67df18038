package migrate

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"reservebook/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
)

// Arbitrary key shared by every process migrating this database.
const advisoryLockKey int64 = 0x72657365727662

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS ` + historyTable + ` (
    version    text        PRIMARY KEY,
    applied_at timestamptz NOT NULL DEFAULT now()
)`

// EmbeddedMigrator applies SQL files in lexical order, one transaction per file,
// and records each version so reruns are no-ops.
type EmbeddedMigrator struct {
	pool   TxBeginner
	fsys   fs.FS
	logger *slog.Logger
}

func NewEmbeddedMigrator(pool TxBeginner, fsys fs.FS, logger *slog.Logger) *EmbeddedMigrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddedMigrator{pool: pool, fsys: fsys, logger: logger}
}

func (m *EmbeddedMigrator) Migrate(ctx context.Context) (Result, error) {
	files, err := loadMigrations(m.fsys)
	if err != nil {
		return Result{}, errs.Mark(err, errs.ErrMigrationFailed)
	}

	if _, err := m.pool.Exec(ctx, createHistoryTable); err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "create "+historyTable), errs.ErrMigrationFailed)
	}

	result := Result{Applied: []string{}}
	for _, f := range files {
		applied, err := m.applyOne(ctx, f)
		if err != nil {
			return result, errs.Mark(errs.Wrapf(err, "apply migration %s", f.version), errs.ErrMigrationFailed)
		}
		if applied {
			m.logger.Info("マイグレーション実行完了", "version", f.version)
			result.Applied = append(result.Applied, f.version)
		}
	}
	return result, nil
}

func (m *EmbeddedMigrator) applyOne(ctx context.Context, f migrationFile) (bool, error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			m.logger.Warn("failed to rollback migration transaction", "version", f.version, "error", rollbackErr.Error())
		}
	}()

	// Serializes concurrent starters; released at commit or rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+historyTable+` WHERE version = $1)`, f.version).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, f.sql); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO `+historyTable+` (version) VALUES ($1)`, f.version); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
