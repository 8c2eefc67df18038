package query

import (
	"reservebook/internal/infra/db"
)

// Queries holds the SQL statements of the reservations table. It is stateless; the
// connection or transaction is passed per call so one value serves both pool and tx.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

type DBTX = db.DBTX
