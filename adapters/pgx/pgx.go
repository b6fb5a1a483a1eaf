// Package pgx implements the profile, task, and account ports on PostgreSQL.
//
// Document semantics are narrowed to fixed columns: partial updates only
// recognize the known fields and silently skip anything else the caller
// supplies.
package pgx

import (
	"database/sql"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lborres/agenda/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var (
	_ core.ProfileStore = (*Adapter)(nil)
	_ core.TaskStore    = (*Adapter)(nil)
	_ core.AccountStore = (*Adapter)(nil)
)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool}
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies the embedded schema migrations against the given DSN.
func Migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
