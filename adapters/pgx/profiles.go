package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/agenda/core"
)

// profileColumns maps JSON field names to their columns for partial updates.
var profileColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"profileImage": "profile_image",
}

func (a *Adapter) PutProfile(ctx context.Context, uid string, p *core.Profile) error {
	q := `INSERT INTO users (uid, name, email, profile_image) VALUES ($1, $2, $3, $4)
	      ON CONFLICT (uid) DO UPDATE SET name = $2, email = $3, profile_image = $4`
	_, err := a.pool.Exec(ctx, q, uid, p.Name, p.Email, p.ProfileImage)
	return err
}

func (a *Adapter) GetProfile(ctx context.Context, uid string) (*core.Profile, error) {
	q := `SELECT name, email, profile_image FROM users WHERE uid = $1`

	p := &core.Profile{}
	err := a.pool.QueryRow(ctx, q, uid).Scan(&p.Name, &p.Email, &p.ProfileImage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}

func (a *Adapter) UpdateProfile(ctx context.Context, uid string, updates map[string]any) error {
	sets := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)
	for field, value := range updates {
		col, ok := profileColumns[field]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return errors.New("no updatable fields supplied")
	}

	args = append(args, uid)
	q := fmt.Sprintf("UPDATE users SET %s WHERE uid = $%d", strings.Join(sets, ", "), len(args))

	tag, err := a.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
