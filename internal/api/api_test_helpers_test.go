package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// testEnv wires the handlers to in-memory stores behind a chi router laid
// out like the production one.
type testEnv struct {
	router     http.Handler
	users      *mocks.MockUserStore
	tasks      *mocks.MockTaskStore
	jwtService auth.JWTService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:  strings.Repeat("s", auth.MinSecretLength),
		BcryptCost: 10,
	})
	require.NoError(t, err)

	env := &testEnv{
		users:      mocks.NewMockUserStore(),
		tasks:      mocks.NewMockTaskStore(),
		jwtService: jwtService,
	}

	userService := service.NewUserService(env.users, &mocks.PlainHasher{}, mocks.PlainVerifier{}, time.Second, discardLogger())
	taskService := service.NewTaskService(env.tasks, time.Second, discardLogger())

	authHandler := NewAuthHandler(userService, jwtService, CookieOptions{}, discardLogger())
	taskHandler := NewTaskHandler(taskService, discardLogger())
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/auth/me", authHandler.Me)
		r.Put("/auth/me", authHandler.UpdateMe)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})
	env.router = r

	return env
}

// do sends body (a string or anything JSON-encodable) with the optional
// session cookie.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers an account and returns its session cookie.
func (e *testEnv) signup(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "signup should set the session cookie")
	return cookie
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.TokenCookieName {
			return c
		}
	}
	return nil
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
