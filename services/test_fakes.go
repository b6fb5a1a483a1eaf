package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/lborres/agenda/core"
)

// FakeIdentity is a test-only fake implementing core.IdentityProvider.
// Accounts live in a map keyed by email; tokens are plain strings mapped to
// uids. Error fields allow behavior injection.
type FakeIdentity struct {
	mu     sync.Mutex
	byMail map[string]string // email -> uid
	tokens map[string]string // token -> uid
	nextID int

	createErr error
	lookupErr error
	verifyErr error
}

func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{
		byMail: make(map[string]string),
		tokens: make(map[string]string),
	}
}

func (f *FakeIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	if _, ok := f.byMail[email]; ok {
		return "", core.ErrEmailTaken
	}
	f.nextID++
	uid := fmt.Sprintf("uid-%d", f.nextID)
	f.byMail[email] = uid
	return uid, nil
}

func (f *FakeIdentity) UserIDByEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return "", f.lookupErr
	}
	uid, ok := f.byMail[email]
	if !ok {
		return "", core.ErrUserNotFound
	}
	return uid, nil
}

func (f *FakeIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	uid, ok := f.tokens[token]
	if !ok {
		return "", core.ErrUnauthenticated
	}
	return uid, nil
}

// GrantToken registers a token for uid so middleware tests can authenticate.
func (f *FakeIdentity) GrantToken(token, uid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = uid
}

// FakeProfileStore is a test-only fake implementing core.ProfileStore.
type FakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*core.Profile

	putErr    error
	getErr    error
	updateErr error
}

func NewFakeProfileStore() *FakeProfileStore {
	return &FakeProfileStore{profiles: make(map[string]*core.Profile)}
}

func (f *FakeProfileStore) PutProfile(ctx context.Context, uid string, p *core.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	cp := *p
	f.profiles[uid] = &cp
	return nil
}

func (f *FakeProfileStore) GetProfile(ctx context.Context, uid string) (*core.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeProfileStore) UpdateProfile(ctx context.Context, uid string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[uid]
	if !ok {
		return core.ErrUserNotFound
	}
	for k, v := range updates {
		s, _ := v.(string)
		switch k {
		case "name":
			p.Name = s
		case "email":
			p.Email = s
		case "profileImage":
			p.ProfileImage = s
		}
	}
	return nil
}

// FakeTaskStore is a test-only fake implementing core.TaskStore.
type FakeTaskStore struct {
	mu     sync.Mutex
	byUser map[string]map[string]*core.Task
	nextID int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func NewFakeTaskStore() *FakeTaskStore {
	return &FakeTaskStore{byUser: make(map[string]map[string]*core.Task)}
}

func (f *FakeTaskStore) ListTasks(ctx context.Context, userID string) ([]*core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var tasks []*core.Task
	for _, t := range f.byUser[userID] {
		cp := *t
		tasks = append(tasks, &cp)
	}
	return tasks, nil
}

func (f *FakeTaskStore) CreateTask(ctx context.Context, userID string, t *core.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	cp := *t
	cp.ID = id
	if f.byUser[userID] == nil {
		f.byUser[userID] = make(map[string]*core.Task)
	}
	f.byUser[userID][id] = &cp
	return id, nil
}

func (f *FakeTaskStore) TaskExists(ctx context.Context, userID, taskID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byUser[userID][taskID]
	return ok, nil
}

func (f *FakeTaskStore) UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	t, ok := f.byUser[userID][taskID]
	if !ok {
		return core.ErrTaskNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			t.Name, _ = v.(string)
		case "description":
			t.Description, _ = v.(string)
		case "date":
			t.Date, _ = v.(string)
		case "startTime":
			t.StartTime, _ = v.(string)
		case "endTime":
			t.EndTime, _ = v.(string)
		case "completed":
			t.Completed, _ = v.(bool)
		case "favorite":
			t.Favorite, _ = v.(bool)
		}
	}
	return nil
}

func (f *FakeTaskStore) DeleteTask(ctx context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byUser[userID][taskID]; !ok {
		return core.ErrTaskNotFound
	}
	delete(f.byUser[userID], taskID)
	return nil
}

// Count reports how many tasks the user has; used to assert that failed
// requests wrote nothing.
func (f *FakeTaskStore) Count(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUser[userID])
}

// FakeBlobStore is a test-only fake implementing core.BlobStore.
type FakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	saveErr error
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{objects: make(map[string][]byte)}
}

func (f *FakeBlobStore) SavePublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.objects[key] = data
	return "https://storage.example.com/test-bucket/" + key, nil
}
