package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

func (b *Backend) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := b.auth.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return record.UID, nil
}

func (b *Backend) UserIDByEmail(ctx context.Context, email string) (string, error) {
	record, err := b.auth.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return record.UID, nil
}

func (b *Backend) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := b.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return decoded.UID, nil
}
