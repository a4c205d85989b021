package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/service"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/internal/store/drivers/sqlite"
	"github.com/Chris-Devine/codecamp/pkg/cryptox"
	"github.com/Chris-Devine/codecamp/pkg/idx"
	"github.com/Chris-Devine/codecamp/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "codecamp-http-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

const (
	testIssuer   = "https://codecamp.test"
	testAudience = "codecamp-api"
)

type testEnv struct {
	router *Router
	store  store.Store
	signer *jwtx.HS256Signer

	reqCount int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256Signer(testSigningKey, testIssuer, testAudience, 0)
	require.NoError(t, err)
	verifier, err := jwtx.NewHS256Verifier(testSigningKey, testIssuer, testAudience)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(verifier, "test", st, logger, "")
	router.AuthService = &service.AuthService{Store: st, Signer: signer}
	router.SessionService = &service.SessionService{Store: st}
	router.CampService = &service.CampService{Store: st}
	router.LockoutOnFailure = true
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, signer: signer}
}

func (e *testEnv) seedUser(t *testing.T, username, password string, claims []domain.CustomClaim) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		FirstName:    "Sam",
		LastName:     "Hastings",
		Email:        username + "@example.com",
		PasswordHash: hash,
		Claims:       claims,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) seedCamp(t *testing.T, moniker string) domain.Camp {
	t.Helper()

	created, err := (&service.CampService{Store: e.store}).CreateCamp(context.Background(), domain.Camp{
		Moniker: moniker,
		Name:    "Test Camp " + moniker,
		Length:  1,
	})
	require.NoError(t, err)
	return created
}

func (e *testEnv) seedSpeaker(t *testing.T, campID, name string) domain.Speaker {
	t.Helper()

	speaker := domain.Speaker{
		ID:     idx.New().String(),
		CampID: campID,
		Name:   name,
	}
	require.NoError(t, e.store.Camps().CreateSpeaker(context.Background(), speaker))
	return speaker
}

// bearerFor issues a real token for the user so protected endpoints see the
// same thing production traffic would.
func (e *testEnv) bearerFor(t *testing.T, username string) string {
	t.Helper()

	signed, err := e.signer.Sign(jwtx.NewClaimSet().Add(jwtx.ClaimSubject, username))
	require.NoError(t, err)
	return "Bearer " + signed.Token
}

func (e *testEnv) do(t *testing.T, method, target string, body any, decorate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Every request gets its own client address so the per-IP limiter never
	// interferes with tests that hammer the auth endpoints.
	e.reqCount++
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", e.reqCount))

	for _, d := range decorate {
		d(req)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", token) }
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(c) }
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", name)
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)

	rec = env.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
