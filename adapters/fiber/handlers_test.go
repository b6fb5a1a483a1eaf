package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/core"
	"github.com/lborres/agenda/services"
)

type testEnv struct {
	app      *fiber.App
	identity *services.FakeIdentity
	profiles *services.FakeProfileStore
	tasks    *services.FakeTaskStore
}

func newTestEnv() *testEnv {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	identity := services.NewFakeIdentity()
	profiles := services.NewFakeProfileStore()
	tasks := services.NewFakeTaskStore()
	blobs := services.NewFakeBlobStore()

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	New(app,
		services.NewAuthService(identity, profiles, blobs, log),
		services.NewTaskService(tasks, log),
	).RegisterRoutes()

	return &testEnv{app: app, identity: identity, profiles: profiles, tasks: tasks}
}

// registerUser registers a user through the HTTP surface and grants a bearer
// token for it.
func (e *testEnv) registerUser(t *testing.T, email, name, token string) string {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/auth/register",
		map[string]any{"email": email, "password": "pw", "name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	uid, _ := body["uid"].(string)
	if uid == "" {
		t.Fatal("register response missing uid")
	}
	e.identity.GrantToken(token, uid)
	return uid
}

func (e *testEnv) doJSON(t *testing.T, method, target string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func (e *testEnv) doAuthed(t *testing.T, method, target, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

// Requirement: register returns 201 with the uid and profile fields merged
// into the envelope; fetching that uid's profile returns the same fields.
func TestRegisterThenGetProfile(t *testing.T) {
	env := newTestEnv()

	resp := env.doJSON(t, http.MethodPost, "/auth/register",
		map[string]any{"email": "a@b.com", "password": "pw", "name": "A"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["title"] == "" || body["message"] == "" {
		t.Error("envelope must carry title and message")
	}
	if body["name"] != "A" || body["email"] != "a@b.com" {
		t.Errorf("register envelope = %v", body)
	}
	uid := body["uid"].(string)

	resp = env.doJSON(t, http.MethodGet, "/auth/user/"+uid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status = %d, want 200", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["uid"] != uid || body["name"] != "A" || body["email"] != "a@b.com" {
		t.Errorf("profile envelope = %v", body)
	}
}

// Requirement: validation failures render the uniform {title, message}
// envelope with status 400.
func TestRegisterValidationEnvelope(t *testing.T) {
	env := newTestEnv()

	resp := env.doJSON(t, http.MethodPost, "/auth/register",
		map[string]any{"email": "a@b.com", "password": "pw"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["title"] != "Validation error" {
		t.Errorf("title = %v", body["title"])
	}
	if body["message"] != "name is required" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestLoginAndLogout(t *testing.T) {
	env := newTestEnv()
	env.registerUser(t, "a@b.com", "A", "tok")

	resp := env.doJSON(t, http.MethodPost, "/auth/login",
		map[string]any{"email": "a@b.com", "password": "whatever"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "A" || body["email"] != "a@b.com" {
		t.Errorf("login envelope = %v", body)
	}

	resp = env.doJSON(t, http.MethodPost, "/auth/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
}

// Requirement: a missing profile document surfaces as 500 on fetch.
func TestGetProfileUnknownUID(t *testing.T) {
	env := newTestEnv()

	resp := env.doJSON(t, http.MethodGet, "/auth/user/ghost", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

// Requirement: profile update via multipart merges the uploaded image URL
// alongside the other supplied fields.
func TestUpdateProfileMultipart(t *testing.T) {
	env := newTestEnv()
	uid := env.registerUser(t, "a@b.com", "A", "tok")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Alice"); err != nil {
		t.Fatal(err)
	}
	fw, err := mw.CreateFormFile("image", "avatar.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/auth/update/"+uid, &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["name"] != "Alice" {
		t.Errorf("name = %v, want Alice", body["name"])
	}
	image, _ := body["profileImage"].(string)
	if !strings.Contains(image, "profileImages/"+uid+"_") {
		t.Errorf("profileImage = %q, want uid+timestamp key", image)
	}

	stored, err := env.profiles.GetProfile(context.Background(), uid)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if stored.ProfileImage != image {
		t.Errorf("stored profileImage = %q, envelope had %q", stored.ProfileImage, image)
	}
}

// Requirement: task routes demand a bearer token; the rejection message never
// reveals which check failed.
func TestTaskRoutesRequireAuth(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name        string
		token       string
		wantMessage string
	}{
		{name: "missing token", wantMessage: core.ErrMissingAuthHeader.Error()},
		{name: "unknown token", token: "forged", wantMessage: core.ErrUnauthenticated.Error()},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			resp := env.doAuthed(t, http.MethodGet, "/tasks/?userId=u1", test.token, nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["message"] != test.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], test.wantMessage)
			}
		})
	}
}

// Requirement: the full task lifecycle over HTTP — create, list, update,
// delete, and 404 on a repeated delete.
func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv()
	uid := env.registerUser(t, "a@b.com", "A", "tok")

	create := env.doAuthed(t, http.MethodPost, "/tasks/", "tok", map[string]any{
		"userId":    uid,
		"name":      "Buy groceries",
		"completed": false,
		"favorite":  false,
		"tags":      []string{"errands"},
	})
	if create.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", create.StatusCode)
	}
	taskID := decodeBody(t, create)["taskId"].(string)

	list := env.doAuthed(t, http.MethodGet, "/tasks/?userId="+uid, "tok", nil)
	if list.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", list.StatusCode)
	}
	tasks := decodeBody(t, list)["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("list returned %d tasks, want 1", len(tasks))
	}
	first := tasks[0].(map[string]any)
	if first["id"] != taskID || first["userId"] != uid || first["name"] != "Buy groceries" {
		t.Errorf("listed task = %v", first)
	}

	update := env.doAuthed(t, http.MethodPut, "/tasks/"+taskID, "tok", map[string]any{
		"userId": uid,
		"name":   "Renamed",
	})
	if update.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", update.StatusCode)
	}

	del := env.doAuthed(t, http.MethodDelete, "/tasks/"+taskID+"?userId="+uid, "tok", nil)
	if del.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", del.StatusCode)
	}

	again := env.doAuthed(t, http.MethodDelete, "/tasks/"+taskID+"?userId="+uid, "tok", nil)
	if again.StatusCode != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d, want 404", again.StatusCode)
	}
}

// Requirement: per-field validation failures surface rule-specific messages
// through the error envelope.
func TestAddTaskValidationMessages(t *testing.T) {
	env := newTestEnv()
	uid := env.registerUser(t, "a@b.com", "A", "tok")

	tests := []struct {
		name        string
		body        map[string]any
		wantMessage string
	}{
		{
			name:        "missing name",
			body:        map[string]any{"userId": uid, "completed": true, "favorite": false},
			wantMessage: "task name is required and must be a string",
		},
		{
			name:        "missing completed",
			body:        map[string]any{"userId": uid, "name": "x", "favorite": false},
			wantMessage: "completed must be a boolean",
		},
		{
			name:        "bad tags",
			body:        map[string]any{"userId": uid, "name": "x", "completed": true, "favorite": false, "tags": "oops"},
			wantMessage: "tags must be an array",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			resp := env.doAuthed(t, http.MethodPost, "/tasks/", "tok", test.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["message"] != test.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], test.wantMessage)
			}
		})
	}
}

// Requirement: unclassified errors fall through the error handler as a 500
// envelope carrying the original message.
func TestErrorHandlerDefaultsTo500(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Get("/boom", func(c fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["title"] != "Error" || body["message"] != io.ErrUnexpectedEOF.Error() {
		t.Errorf("envelope = %v", body)
	}
}
