package commands

//go:generate mockgen -source=schema.go -destination=../../../tests/mock/commands/schema.go -package=commandsmock

import (
	"context"

	"reservebook/internal/pkg/errs"
	"reservebook/internal/usecase/shared"
)

type InitDBResult struct {
	Applied []string
	Tables  []string
}

type SchemaCommands interface {
	InitDB(ctx context.Context) (*InitDBResult, error)
}

type schemaUseCaseImpl struct {
	schema shared.SchemaManager
}

func NewSchemaUseCase(schema shared.SchemaManager) SchemaCommands {
	return &schemaUseCaseImpl{schema: schema}
}

// InitDB brings the schema up to date. It is idempotent.
func (uc *schemaUseCaseImpl) InitDB(ctx context.Context) (*InitDBResult, error) {
	applied, err := uc.schema.Migrate(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrMigrationFailed)
	}

	tables, err := uc.schema.Tables(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &InitDBResult{Applied: applied, Tables: tables}, nil
}
