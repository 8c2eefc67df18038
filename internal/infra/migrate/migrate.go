package migrate

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"reservebook/internal/infra/db"
	"reservebook/internal/pkg/config"
	"reservebook/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql migrations/atlas.sum
var embedded embed.FS

const (
	DriverEmbedded = "embedded"
	DriverAtlas    = "atlas"

	historyTable = "schema_migrations"
)

// Result lists the versions a run applied; empty when the schema was already current.
type Result struct {
	Applied []string
}

type Migrator interface {
	Migrate(ctx context.Context) (Result, error)
}

// TxBeginner is the part of *pgxpool.Pool migrations need.
type TxBeginner interface {
	db.DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

func New(cfg config.Config, pool TxBeginner, logger *slog.Logger) (Migrator, error) {
	switch strings.ToLower(cfg.Migration.Driver) {
	case "", DriverEmbedded:
		return NewEmbeddedMigrator(pool, MigrationsFS(), logger), nil
	case DriverAtlas:
		dsn, err := cfg.DB.BuildDSN()
		if err != nil {
			return nil, err
		}
		return NewAtlasMigrator(cfg.Migration.AtlasBin, dsn, cfg.Migration.DirURL, logger), nil
	default:
		return nil, errs.Mark(errs.New("unknown migration driver: "+cfg.Migration.Driver), errs.ErrMigrationFailed)
	}
}

// MigrationsFS returns the migration directory embedded in the binary, rooted at the SQL files.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

type migrationFile struct {
	version string
	sql     string
}

func loadMigrations(fsys fs.FS) ([]migrationFile, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	files := make([]migrationFile, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errs.Wrapf(err, "read migration %s", name)
		}
		files = append(files, migrationFile{
			version: strings.TrimSuffix(path.Base(name), ".sql"),
			sql:     string(body),
		})
	}
	return files, nil
}

const listTables = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = current_schema()
  AND table_type = 'BASE TABLE'
  AND table_name <> '` + historyTable + `'
ORDER BY table_name`

// Tables lists the application tables in the current schema.
func Tables(ctx context.Context, conn db.DBTX) ([]string, error) {
	rows, err := conn.Query(ctx, listTables)
	if err != nil {
		return nil, errs.Wrap(err, "list tables")
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errs.Wrap(err, "scan tables")
	}
	return tables, nil
}
