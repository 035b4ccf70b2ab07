package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/tasktracker/pkg/auth"
	"github.com/vbncursed/tasktracker/pkg/security/jwt"
)

type singleUserRepo struct {
	user auth.User
}

func (r singleUserRepo) Create(ctx context.Context, user auth.User) error { return nil }

func (r singleUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	if email != r.user.Email {
		return auth.User{}, auth.ErrNotFound
	}
	return r.user, nil
}

func newGuardedApp(users auth.UserRepository, gen *jwt.Generator) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwt.NewAuthMiddleware(gen, users), func(c *fiber.Ctx) error {
		user, ok := jwt.CurrentUser(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(user.Email)
	})
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMiddleware_ResolvesUser(t *testing.T) {
	gen := jwt.NewGenerator("secret", "tasktracker", time.Hour)
	repo := singleUserRepo{user: auth.User{Email: "alice@example.com"}}
	app := newGuardedApp(repo, gen)

	tok, err := gen.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)

	resp := get(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddleware_RequiresBearerPrefix(t *testing.T) {
	gen := jwt.NewGenerator("secret", "tasktracker", time.Hour)
	repo := singleUserRepo{user: auth.User{Email: "alice@example.com"}}
	app := newGuardedApp(repo, gen)

	tok, err := gen.Issue(context.Background(), "alice@example.com")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"no header":      "",
		"bare token":     tok,
		"wrong scheme":   "Basic " + tok,
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not.a.jwt",
		"unknown signer": "Bearer " + mustIssue(t, jwt.NewGenerator("other", "tasktracker", time.Hour), "alice@example.com"),
	} {
		resp := get(t, app, header)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, name)
	}
}

func TestMiddleware_UnknownIdentity(t *testing.T) {
	gen := jwt.NewGenerator("secret", "tasktracker", time.Hour)
	repo := singleUserRepo{user: auth.User{Email: "alice@example.com"}}
	app := newGuardedApp(repo, gen)

	tok, err := gen.Issue(context.Background(), "ghost@example.com")
	require.NoError(t, err)

	resp := get(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func mustIssue(t *testing.T, g *jwt.Generator, email string) string {
	t.Helper()
	tok, err := g.Issue(context.Background(), email)
	require.NoError(t, err)
	return tok
}
