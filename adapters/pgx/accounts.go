package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lborres/agenda/core"
)

func (a *Adapter) CreateAccount(ctx context.Context, acc *core.Account) error {
	q := `INSERT INTO accounts (uid, email, password_hash) VALUES ($1, $2, $3)`
	_, err := a.pool.Exec(ctx, q, acc.UID, acc.Email, acc.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return core.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (a *Adapter) GetAccountByEmail(ctx context.Context, email string) (*core.Account, error) {
	q := `SELECT uid, email, password_hash FROM accounts WHERE email = $1`

	acc := &core.Account{}
	err := a.pool.QueryRow(ctx, q, email).Scan(&acc.UID, &acc.Email, &acc.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return acc, nil
}
