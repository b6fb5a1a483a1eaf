package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lborres/agenda/core"
)

// AuthService orchestrates the identity provider, profile store, and blob
// store for registration, login, and profile management.
type AuthService struct {
	identity core.IdentityProvider
	profiles core.ProfileStore
	blobs    core.BlobStore
	log      *slog.Logger

	now func() time.Time
}

func NewAuthService(identity core.IdentityProvider, profiles core.ProfileStore, blobs core.BlobStore, log *slog.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		profiles: profiles,
		blobs:    blobs,
		log:      log,
		now:      time.Now,
	}
}

// Register creates an account with the identity provider and writes the user
// profile document keyed by the returned uid.
//
// A failure after account creation leaves an orphaned identity record; there
// is no rollback.
func (s *AuthService) Register(ctx context.Context, in core.RegisterInput) (*core.RegisterResult, error) {
	if in.Email == "" {
		return nil, core.Validation("email is required")
	}
	if in.Password == "" {
		return nil, core.Validation("password is required")
	}
	if in.Name == "" {
		return nil, core.Validation("name is required")
	}

	uid, err := s.identity.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, core.Provider("Registration error", err)
	}
	s.log.Debug("identity account created", "uid", uid)

	profile := &core.Profile{Name: in.Name, Email: in.Email}
	if err := s.profiles.PutProfile(ctx, uid, profile); err != nil {
		return nil, core.Provider("Registration error", err)
	}

	// Re-read to confirm the write landed before reporting success.
	stored, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		if err == core.ErrUserNotFound {
			return nil, core.NotFound("Registration error", "user profile not found after registration")
		}
		return nil, core.Provider("Registration error", err)
	}

	return &core.RegisterResult{UID: uid, Profile: stored}, nil
}

// Login resolves the account by email and returns the stored profile.
//
// TODO: confirm whether login should verify the password against the
// identity provider; the current flow accepts it without checking, matching
// the original behavior.
func (s *AuthService) Login(ctx context.Context, in core.LoginInput) (string, *core.Profile, error) {
	if in.Email == "" {
		return "", nil, core.Validation("email is required")
	}
	if in.Password == "" {
		return "", nil, core.Validation("password is required")
	}

	uid, err := s.identity.UserIDByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, core.Provider("Login error", err)
	}

	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		if err == core.ErrUserNotFound {
			return "", nil, core.NotFound("Login error", "user not found")
		}
		return "", nil, core.Provider("Login error", err)
	}

	s.log.Debug("user logged in", "uid", uid)
	return uid, profile, nil
}

// UpdateProfile applies a partial update to the user document. When an image
// is supplied it is stored publicly under a uid+timestamp key first and its
// URL merged into the updates as profileImage.
//
// The upload and the document update are two sequential calls; a failure
// between them leaves the uploaded object orphaned.
func (s *AuthService) UpdateProfile(ctx context.Context, uid string, updates map[string]any, image *core.Upload) (*core.Profile, error) {
	if uid == "" {
		return nil, core.Validation("uid is required")
	}
	if updates == nil {
		updates = map[string]any{}
	}

	if image != nil {
		key := fmt.Sprintf("profileImages/%s_%d.jpg", uid, s.now().UnixMilli())
		url, err := s.blobs.SavePublic(ctx, key, image.Data, image.ContentType)
		if err != nil {
			return nil, core.Provider("Profile update error", err)
		}
		s.log.Debug("profile image uploaded", "uid", uid, "key", key)
		updates["profileImage"] = url
	}

	if err := s.profiles.UpdateProfile(ctx, uid, updates); err != nil {
		return nil, core.Provider("Profile update error", err)
	}

	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		if err == core.ErrUserNotFound {
			return nil, &core.Error{
				Status:  http.StatusInternalServerError,
				Title:   "Profile update error",
				Message: "user not found",
			}
		}
		return nil, core.Provider("Profile update error", err)
	}

	return profile, nil
}

// Profile fetches the user document for uid.
//
// A missing document surfaces as status 500, not 404; task lookups use 404.
// The mismatch is inherited behavior and is kept as-is.
func (s *AuthService) Profile(ctx context.Context, uid string) (*core.Profile, error) {
	if uid == "" {
		return nil, core.Validation("uid is required")
	}

	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		if err == core.ErrUserNotFound {
			return nil, &core.Error{
				Status:  http.StatusInternalServerError,
				Title:   "Profile error",
				Message: "user not found",
			}
		}
		return nil, core.Provider("Profile error", err)
	}

	return profile, nil
}

// Authenticate verifies a bearer token and resolves the owning profile.
// Failures collapse to one generic message so callers cannot tell which step
// rejected them.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, *core.Profile, error) {
	uid, err := s.identity.VerifyToken(ctx, token)
	if err != nil {
		return "", nil, core.Unauthorized(core.ErrUnauthenticated.Error())
	}

	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		return "", nil, core.Unauthorized(core.ErrUnauthenticated.Error())
	}

	return uid, profile, nil
}
