package shared

//go:generate mockgen -source=schema.go -destination=../../../tests/mock/shared/schema.go -package=sharedmock

import "context"

type SchemaManager interface {
	// Migrate applies pending migrations and returns the versions it applied.
	Migrate(ctx context.Context) ([]string, error)
	Tables(ctx context.Context) ([]string, error)
}
