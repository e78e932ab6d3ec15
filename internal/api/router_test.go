package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/core/service"
	"github.com/inkwell/blog-api/internal/infrastructure/db/gormdb"
)

const testOrigin = "http://localhost:3000"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gormdb.Connect(context.Background(), gormdb.Config{
		Driver: gormdb.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormdb.Close(db) })

	tokens, err := service.NewTokenIssuer(service.TokenConfig{AccessSecret: "access", RefreshSecret: "refresh"})
	require.NoError(t, err)

	users := gormdb.NewUserRepository(db)
	posts := gormdb.NewPostRepository(db)

	return NewRouter(Deps{
		Auth:   service.NewAuthService(users, service.NewBcryptHasher(bcrypt.MinCost), tokens, zerolog.Nop()),
		Posts:  service.NewPostService(posts, users, zerolog.Nop()),
		Tokens: tokens,
		Checks: map[string]handler.Check{
			"database": func(ctx context.Context) error { return gormdb.Ping(ctx, db) },
		},
		Logger:         zerolog.Nop(),
		Registry:       prometheus.NewRegistry(),
		CORSOrigin:     testOrigin,
		LoginRateLimit: 100,
	})
}

func do(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func register(t *testing.T, e *echo.Echo, name, email string) int64 {
	t.Helper()
	rec := do(e, http.MethodPost, "/auth/register",
		fmt.Sprintf(`{"name":%q,"phone":"123-456-7890","email":%q,"password":"secret1"}`, name, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode(t, rec)["user"].(map[string]any)
	return int64(user["id"].(float64))
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/auth/register", `{"name":"A","phone":"123-456-7890","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "success", decode(t, rec)["status"])

	rec = do(e, http.MethodPost, "/auth/register", `{"name":"B","phone":"123-456-7890","email":"a@x.com","password":"other12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email already registered", decode(t, rec)["error"])

	rec = do(e, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens := decode(t, rec)
	access, _ := tokens["accessToken"].(string)
	refresh, _ := tokens["refreshToken"].(string)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	wrong := do(e, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrong12"}`)
	unknown := do(e, http.MethodPost, "/auth/login", `{"email":"b@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	rec = do(e, http.MethodGet, "/auth/me", "", echo.HeaderAuthorization, "Bearer "+access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "a@x.com", decode(t, rec)["email"])

	rec = do(e, http.MethodGet, "/auth/me", "", echo.HeaderAuthorization, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/auth/refresh", fmt.Sprintf(`{"refreshToken":%q}`, refresh))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode(t, rec)["accessToken"])
}

func TestRouter_UserCRUD(t *testing.T) {
	e := newTestServer(t)
	id := register(t, e, "Ada", "ada@example.com")
	register(t, e, "Bob", "bob@example.com")

	rec := do(e, http.MethodGet, "/auth?items_per_page=1&page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.EqualValues(t, 2, page["total"])
	assert.EqualValues(t, 2, page["currentPage"])
	assert.EqualValues(t, 1, page["itemsPerPage"])
	assert.Len(t, page["data"], 1)

	rec = do(e, http.MethodGet, "/auth?search=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	path := fmt.Sprintf("/auth/%d", id)
	rec = do(e, http.MethodPut, path, `{"name":"Ada L."}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada L.", decode(t, rec)["name"])

	rec = do(e, http.MethodPut, path, `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/auth/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user deleted", decode(t, rec)["message"])

	rec = do(e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PostLifecycle(t *testing.T) {
	e := newTestServer(t)
	ada := register(t, e, "Ada", "ada@example.com")
	bob := register(t, e, "Bob", "bob@example.com")

	rec := do(e, http.MethodPost, "/posts", `{"title":"T","summary":"S","content":"C","ownerId":999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/posts", fmt.Sprintf(`{"title":"Hello","summary":"S","content":"C","ownerId":%d}`, ada))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	postPath := fmt.Sprintf("/posts/%d", int64(created["id"].(float64)))
	owner := created["owner"].(map[string]any)
	assert.Equal(t, "Ada", owner["name"])
	assert.NotContains(t, owner, "password")

	rec = do(e, http.MethodPut, postPath, `{"title":"Hello again","owner":{"name":"Ada Lovelace"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "Hello again", updated["title"])
	assert.Equal(t, "Ada Lovelace", updated["owner"].(map[string]any)["name"])

	rec = do(e, http.MethodPut, postPath, `{"owner":{"email":"bob@example.com"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPut, postPath, fmt.Sprintf(`{"ownerId":%d}`, bob))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, bob, decode(t, rec)["ownerId"])

	rec = do(e, http.MethodGet, "/posts?search=again", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])

	rec = do(e, http.MethodDelete, fmt.Sprintf("/auth/%d", bob), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, postPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "post not found", decode(t, rec)["error"])
}

func TestRouter_DeletePostReturnsIt(t *testing.T) {
	e := newTestServer(t)
	ada := register(t, e, "Ada", "ada@example.com")

	rec := do(e, http.MethodPost, "/posts", fmt.Sprintf(`{"title":"Bye","summary":"S","content":"C","ownerId":%d}`, ada))
	require.Equal(t, http.StatusCreated, rec.Code)
	path := fmt.Sprintf("/posts/%d", int64(decode(t, rec)["id"].(float64)))

	rec = do(e, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bye", decode(t, rec)["title"])

	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodOptions, "/posts", "",
		echo.HeaderOrigin, testOrigin,
		echo.HeaderAccessControlRequestMethod, http.MethodPost)
	assert.Equal(t, testOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = do(e, http.MethodOptions, "/posts", "",
		echo.HeaderOrigin, "http://evil.example",
		echo.HeaderAccessControlRequestMethod, http.MethodPost)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	do(e, http.MethodGet, "/posts", "")
	rec = do(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_requests_total")

	register(t, e, "Metrics", "metrics@x.com")
	rec = do(e, http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), "blog_registrations_total")

	rec = do(e, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/auth/register")
}

func TestRouter_LoginRateLimit(t *testing.T) {
	e := NewRouter(Deps{
		Logger:         zerolog.Nop(),
		Registry:       prometheus.NewRegistry(),
		CORSOrigin:     testOrigin,
		LoginRateLimit: 0.001,
	})

	// burst of 1: the first attempt reaches validation, the second is throttled
	first := do(e, http.MethodPost, "/auth/login", `{}`)
	second := do(e, http.MethodPost, "/auth/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
