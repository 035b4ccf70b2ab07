package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apihttp "github.com/vbncursed/tasktracker/api/http"
	"github.com/vbncursed/tasktracker/api/http/handlers"
	"github.com/vbncursed/tasktracker/pkg/auth"
	"github.com/vbncursed/tasktracker/pkg/health"
	"github.com/vbncursed/tasktracker/pkg/security/jwt"
	"github.com/vbncursed/tasktracker/pkg/task"
)

const (
	testSecret = "test-secret"
	testIssuer = "tasktracker"
)

// --- in-memory repositories ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]auth.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return auth.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]task.Task
	order []uuid.UUID
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[uuid.UUID]task.Task{}}
}

func (m *memTaskRepo) Create(ctx context.Context, t task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}

func (m *memTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (m *memTaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []task.Task
	for _, id := range m.order {
		if t, ok := m.tasks[id]; ok && t.OwnerID == ownerID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *memTaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return task.ErrNotFound
	}
	t.Status = status
	m.tasks[id] = t
	return nil
}

func (m *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return task.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

type okChecker struct{}

func (okChecker) Name() string                    { return "ok" }
func (okChecker) Check(ctx context.Context) error { return nil }

// --- test app wiring, mirroring cmd/server ---

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := newMemUserRepo()
	taskRepo := newMemTaskRepo()

	jwtGen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	authHandler := handlers.NewAuthHandler(auth.NewService(userRepo, jwtGen))
	taskHandler := handlers.NewTaskHandler(task.NewService(taskRepo))
	healthHandler := handlers.NewHealthHandler(health.NewService(okChecker{}))
	authMW := jwt.NewAuthMiddleware(jwtGen, userRepo)

	app := fiber.New()
	apihttp.Register(app, authHandler, taskHandler, healthHandler, authMW)
	return app
}

// --- request helpers ---

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, data
}

func register(t *testing.T, app *fiber.App, email, password, name string) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"email": email, "password": password, "name": name,
	})
	if status != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, status, body)
	}
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, status, body)
	}
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatal("login returned empty accessToken")
	}
	return res.AccessToken
}
