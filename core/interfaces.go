package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// IDENTITY PORT (external auth provider)
// ============================================

// IdentityProvider wraps the external identity service: account creation,
// account lookup by email, and bearer-token verification. All three return
// the provider-issued uid.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	UserIDByEmail(ctx context.Context, email string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// ============================================
// STORAGE PORTS (document operations)
// ============================================

// ProfileStore defines operations on user profile documents.
//
// UpdateProfile applies a partial update: only the named fields change,
// everything else keeps its prior value. Implementations return
// ErrUserNotFound when the document does not exist.
type ProfileStore interface {
	PutProfile(ctx context.Context, uid string, p *Profile) error
	GetProfile(ctx context.Context, uid string) (*Profile, error)
	UpdateProfile(ctx context.Context, uid string, updates map[string]any) error
}

// TaskStore defines operations on task documents scoped to one user.
//
// CreateTask returns the store-generated id. UpdateTask applies the supplied
// fields as a partial update. Implementations return ErrTaskNotFound from
// UpdateTask when the document does not exist; existence for update/delete is
// pre-checked by the caller via TaskExists.
type TaskStore interface {
	ListTasks(ctx context.Context, userID string) ([]*Task, error)
	CreateTask(ctx context.Context, userID string, t *Task) (string, error)
	TaskExists(ctx context.Context, userID, taskID string) (bool, error)
	UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) error
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// AccountStore defines credential persistence for the localauth identity
// provider. Not used by the firebase backend.
type AccountStore interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// ============================================
// BLOB PORT
// ============================================

// BlobStore persists a binary object under the given key, makes it publicly
// readable, and returns its public URL.
type BlobStore interface {
	SavePublic(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
