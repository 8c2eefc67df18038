package migrate

import (
	"context"

	"reservebook/internal/infra/db"
)

// Schema adapts a Migrator to the usecase layer's SchemaManager port.
type Schema struct {
	migrator Migrator
	conn     db.DBTX
}

func NewSchema(migrator Migrator, conn db.DBTX) *Schema {
	return &Schema{migrator: migrator, conn: conn}
}

func (s *Schema) Migrate(ctx context.Context) ([]string, error) {
	res, err := s.migrator.Migrate(ctx)
	if err != nil {
		return nil, err
	}
	return res.Applied, nil
}

func (s *Schema) Tables(ctx context.Context) ([]string, error) {
	return Tables(ctx, s.conn)
}
