// Package localauth implements the identity-provider port without an
// external service: accounts live in the AccountStore with argon2id password
// hashes, and bearer tokens are HS256 JWTs. It backs the postgres deployment
// profile; the firebase backend replaces it entirely.
package localauth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lborres/agenda/core"
	"github.com/lborres/agenda/crypto"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims includes the registered JWT claims plus the account uid.
type Claims struct {
	jwt.RegisteredClaims
	UID string `json:"uid"`
}

type Provider struct {
	accounts  core.AccountStore
	passwords crypto.PasswordHandler
	secret    []byte
	tokenTTL  time.Duration
}

var _ core.IdentityProvider = (*Provider)(nil)

func New(accounts core.AccountStore, secret []byte, tokenTTL time.Duration) *Provider {
	return &Provider{
		accounts:  accounts,
		passwords: crypto.NewArgon2(),
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

func (p *Provider) CreateUser(ctx context.Context, email, password string) (string, error) {
	hash, err := p.passwords.Hash(password)
	if err != nil {
		return "", err
	}

	account := &core.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := p.accounts.CreateAccount(ctx, account); err != nil {
		return "", err
	}
	return account.UID, nil
}

func (p *Provider) UserIDByEmail(ctx context.Context, email string) (string, error) {
	account, err := p.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return account.UID, nil
}

func (p *Provider) VerifyToken(ctx context.Context, token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.UID == "" {
		return "", ErrInvalidToken
	}
	return claims.UID, nil
}

// IssueToken mints a bearer token for uid. The hosted identity provider
// issues tokens through its client SDK; this is the local counterpart used
// by clients of the postgres deployment.
func (p *Provider) IssueToken(uid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.tokenTTL)),
		},
		UID: uid,
	})
	return token.SignedString(p.secret)
}

// VerifyPassword checks a password against the stored account hash. Login
// deliberately does not call this (see AuthService.Login); it exists for
// clients of the local provider that mint tokens themselves.
func (p *Provider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	account, err := p.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	ok, err := p.passwords.Verify(password, account.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("invalid email or password")
	}
	return account.UID, nil
}
