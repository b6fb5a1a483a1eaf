package firebase

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lborres/agenda/core"
)

func (b *Backend) tasksRef(userID string) *firestore.CollectionRef {
	return b.profileDoc(userID).Collection(tasksCollection)
}

// ListTasks returns every task document under the user, in store-native
// order. An unknown user simply yields no documents.
func (b *Backend) ListTasks(ctx context.Context, userID string) ([]*core.Task, error) {
	iter := b.tasksRef(userID).Documents(ctx)
	defer iter.Stop()

	var tasks []*core.Task
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var t core.Task
		if err := snap.DataTo(&t); err != nil {
			return nil, err
		}
		t.ID = snap.Ref.ID
		tasks = append(tasks, &t)
	}
	return tasks, nil
}

func (b *Backend) CreateTask(ctx context.Context, userID string, t *core.Task) (string, error) {
	doc := b.tasksRef(userID).NewDoc()
	if _, err := doc.Set(ctx, t); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (b *Backend) TaskExists(ctx context.Context, userID, taskID string) (bool, error) {
	_, err := b.tasksRef(userID).Doc(taskID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *Backend) UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) error {
	_, err := b.tasksRef(userID).Doc(taskID).Update(ctx, fieldUpdates(updates))
	if status.Code(err) == codes.NotFound {
		return core.ErrTaskNotFound
	}
	return err
}

func (b *Backend) DeleteTask(ctx context.Context, userID, taskID string) error {
	_, err := b.tasksRef(userID).Doc(taskID).Delete(ctx)
	return err
}
