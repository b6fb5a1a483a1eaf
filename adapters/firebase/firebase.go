// Package firebase implements the identity, profile, task, and blob ports on
// the Firebase Admin SDK: Firebase Auth, Firestore, and Cloud Storage.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/lborres/agenda/core"
)

const (
	usersCollection = "users"
	tasksCollection = "Tasks"
)

// Backend holds the shared Firebase clients. It is constructed once at
// startup and implements every storage-facing port.
type Backend struct {
	auth       *auth.Client
	firestore  *firestore.Client
	bucket     *gcs.BucketHandle
	bucketName string
}

var (
	_ core.IdentityProvider = (*Backend)(nil)
	_ core.ProfileStore     = (*Backend)(nil)
	_ core.TaskStore        = (*Backend)(nil)
	_ core.BlobStore        = (*Backend)(nil)
)

// New initializes the Firebase app and its Auth, Firestore, and Storage
// clients. With an empty credentialsFile the SDK falls back to application
// default credentials.
func New(ctx context.Context, credentialsFile, storageBucket string) (*Backend, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("storage bucket: %w", err)
	}

	return &Backend{
		auth:       authClient,
		firestore:  fsClient,
		bucket:     bucket,
		bucketName: storageBucket,
	}, nil
}

func (b *Backend) Close() error {
	return b.firestore.Close()
}
