package firebase

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lborres/agenda/core"
)

func (b *Backend) profileDoc(uid string) *firestore.DocumentRef {
	return b.firestore.Collection(usersCollection).Doc(uid)
}

func (b *Backend) PutProfile(ctx context.Context, uid string, p *core.Profile) error {
	_, err := b.profileDoc(uid).Set(ctx, p)
	return err
}

func (b *Backend) GetProfile(ctx context.Context, uid string) (*core.Profile, error) {
	snap, err := b.profileDoc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var p core.Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (b *Backend) UpdateProfile(ctx context.Context, uid string, updates map[string]any) error {
	_, err := b.profileDoc(uid).Update(ctx, fieldUpdates(updates))
	if status.Code(err) == codes.NotFound {
		return core.ErrUserNotFound
	}
	return err
}

// fieldUpdates converts a JSON update map into firestore field updates.
func fieldUpdates(updates map[string]any) []firestore.Update {
	out := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		out = append(out, firestore.Update{Path: path, Value: value})
	}
	return out
}
