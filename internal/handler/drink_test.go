package handler

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/middleware"
	"coffeeshop/internal/repository/sqlite"
	"coffeeshop/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://coffee.example.auth0.com/"
	testAudience = "drinks"
)

var allPermissions = []string{
	auth.PermGetDrinksDetail,
	auth.PermPostDrinks,
	auth.PermPatchDrinks,
	auth.PermDeleteDrinks,
}

type testServer struct {
	t   *testing.T
	mux *http.ServeMux
	db  *sql.DB
	key *rsa.PrivateKey
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.OpenDB(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewDrinkRepository(db, "test_", logger)
	require.NoError(t, repo.EnsureSchema(ctx))
	svc := service.NewDrinkService(repo, sqlite.NewTransactionManager(db, logger), logger)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier := auth.NewJWTVerifierWithKeyfunc(
		func(*jwt.Token) (any, error) { return &key.PublicKey, nil },
		auth.VerifierConfig{Issuer: testIssuer, Audience: testAudience},
		logger,
	)
	guard := middleware.NewGuard(verifier, auth.NewPermissionChecker(), logger)

	mux := http.NewServeMux()
	NewDrinkHandler(svc, logger).RegisterRoutes(mux, guard)

	return &testServer{t: t, mux: mux, db: db, key: key}
}

// token signs a token carrying the given permissions. A nil slice omits the claim.
func (s *testServer) token(permissions []string) string {
	s.t.Helper()
	claims := jwt.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"sub": "auth0|barista",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if permissions != nil {
		claims["permissions"] = permissions
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	require.NoError(s.t, err)
	return signed
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return rec.Code, out
}

func (s *testServer) createDrink(title string) int64 {
	s.t.Helper()
	body := `{"title":"` + title + `","recipe":[{"name":"water","color":"blue","parts":1}]}`
	status, out := s.do(http.MethodPost, "/drinks", s.token(allPermissions), body)
	require.Equal(s.t, http.StatusOK, status, "create failed: %v", out)
	drinks := out["drinks"].([]any)
	return int64(drinks[0].(map[string]any)["id"].(float64))
}

const waterBody = `{"title":"Water","recipe":[{"name":"water","color":"blue","parts":1}]}`

var protectedRoutes = []struct {
	method     string
	path       string
	body       string
	permission string
}{
	{http.MethodGet, "/drinks-detail", "", auth.PermGetDrinksDetail},
	{http.MethodPost, "/drinks", waterBody, auth.PermPostDrinks},
	{http.MethodPatch, "/drinks/1", waterBody, auth.PermPatchDrinks},
	{http.MethodDelete, "/drinks/1", "", auth.PermDeleteDrinks},
}

func TestProtectedRoutes_MissingHeader(t *testing.T) {
	s := newTestServer(t)
	for _, rt := range protectedRoutes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			status, out := s.do(rt.method, rt.path, "", rt.body)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, float64(401), out["error"])
			assert.Equal(t, "authorization_header_missing", out["code"])
		})
	}
}

func TestProtectedRoutes_InvalidToken(t *testing.T) {
	s := newTestServer(t)
	status, out := s.do(http.MethodGet, "/drinks-detail", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_header", out["code"])
}

func TestProtectedRoutes_MissingPermissionsClaim(t *testing.T) {
	s := newTestServer(t)
	for _, rt := range protectedRoutes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			status, out := s.do(rt.method, rt.path, s.token(nil), rt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "invalid_claims", out["code"])
		})
	}
}

func TestProtectedRoutes_PermissionDenied(t *testing.T) {
	s := newTestServer(t)
	for _, rt := range protectedRoutes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			var others []string
			for _, p := range allPermissions {
				if p != rt.permission {
					others = append(others, p)
				}
			}
			status, out := s.do(rt.method, rt.path, s.token(others), rt.body)
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, "unauthorized", out["code"])
			assert.Equal(t, float64(403), out["error"])
		})
	}
}

func TestCreateDrink_ListProjections(t *testing.T) {
	s := newTestServer(t)

	status, out := s.do(http.MethodPost, "/drinks", s.token([]string{auth.PermPostDrinks}), waterBody)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	created := out["drinks"].([]any)
	require.Len(t, created, 1)
	assert.Equal(t, "Water", created[0].(map[string]any)["title"])

	status, out = s.do(http.MethodGet, "/drinks-detail", s.token([]string{auth.PermGetDrinksDetail}), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	long := out["drinks"].([]any)
	require.Len(t, long, 1)
	ingredient := long[0].(map[string]any)["recipe"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"name": "water", "color": "blue", "parts": float64(1)}, ingredient)

	status, out = s.do(http.MethodGet, "/drinks", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	short := out["drinks"].([]any)
	require.Len(t, short, 1)
	ingredient = short[0].(map[string]any)["recipe"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"color": "blue", "parts": float64(1)}, ingredient)
	assert.NotContains(t, ingredient, "name")
}

func TestListDrinks_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)
	status, out := s.do(http.MethodGet, "/drinks", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, out["drinks"])
}

func TestCreateDrink_BadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"title":`},
		{"missing title", `{"recipe":[{"name":"water","color":"blue","parts":1}]}`},
		{"blank title", `{"title":"   ","recipe":[{"name":"water","color":"blue","parts":1}]}`},
		{"missing recipe", `{"title":"Water"}`},
		{"empty recipe", `{"title":"Water","recipe":[]}`},
		{"recipe not a list", `{"title":"Water","recipe":"water"}`},
		{"ingredient without name", `{"title":"Water","recipe":[{"color":"blue","parts":1}]}`},
		{"zero parts", `{"title":"Water","recipe":[{"name":"water","color":"blue","parts":0}]}`},
		{"title too long", `{"title":"` + strings.Repeat("x", 81) + `","recipe":[{"name":"water","color":"blue","parts":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := s.do(http.MethodPost, "/drinks", s.token([]string{auth.PermPostDrinks}), tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, float64(400), out["error"])
			assert.NotEmpty(t, out["message"])
		})
	}
}

func TestCreateDrink_DuplicateTitleIsUnprocessable(t *testing.T) {
	s := newTestServer(t)
	s.createDrink("Water")

	status, out := s.do(http.MethodPost, "/drinks", s.token([]string{auth.PermPostDrinks}), waterBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]any{"success": false, "error": float64(422), "message": "unprocessable"}, out)
}

func TestUpdateDrink(t *testing.T) {
	s := newTestServer(t)
	id := s.createDrink("Water")

	body := `{"title":"Latte","recipe":[{"name":"milk","color":"white","parts":2},{"name":"coffee","color":"brown","parts":1}]}`
	status, out := s.do(http.MethodPatch, pathFor(id), s.token([]string{auth.PermPatchDrinks}), body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	drinks := out["drinks"].([]any)
	require.Len(t, drinks, 1)
	updated := drinks[0].(map[string]any)
	assert.Equal(t, float64(id), updated["id"])
	assert.Equal(t, "Latte", updated["title"])
	assert.Len(t, updated["recipe"], 2)
}

func TestUpdateDrink_NotFoundHasNoSideEffects(t *testing.T) {
	s := newTestServer(t)
	s.createDrink("Water")
	_, before := s.do(http.MethodGet, "/drinks-detail", s.token(allPermissions), "")

	body := `{"title":"Latte","recipe":[{"name":"milk","color":"white","parts":2}]}`
	status, out := s.do(http.MethodPatch, "/drinks/999", s.token([]string{auth.PermPatchDrinks}), body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{"success": false, "error": float64(404), "message": "resource not found"}, out)

	_, after := s.do(http.MethodGet, "/drinks-detail", s.token(allPermissions), "")
	assert.Equal(t, before, after)
}

func TestUpdateDrink_NonIntegerID(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(http.MethodPatch, "/drinks/abc", s.token(allPermissions), waterBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteDrink(t *testing.T) {
	s := newTestServer(t)
	keep := s.createDrink("Water")
	id := s.createDrink("Espresso")

	status, out := s.do(http.MethodDelete, pathFor(id), s.token([]string{auth.PermDeleteDrinks}), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"success": true, "delete": float64(id)}, out)

	_, out = s.do(http.MethodGet, "/drinks", "", "")
	drinks := out["drinks"].([]any)
	require.Len(t, drinks, 1)
	assert.Equal(t, float64(keep), drinks[0].(map[string]any)["id"])

	status, _ = s.do(http.MethodDelete, pathFor(id), s.token([]string{auth.PermDeleteDrinks}), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStorageFailureIsUnprocessable(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Close())

	status, out := s.do(http.MethodGet, "/drinks-detail", s.token(allPermissions), "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "unprocessable", out["message"])
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	status, out := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])
}

func pathFor(id int64) string {
	return "/drinks/" + strconv.FormatInt(id, 10)
}
