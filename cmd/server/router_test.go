package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/config"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/mocks"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router http.Handler
	users  *mocks.MockUserStore
	logs   *logger.TestLogBuffer
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                0,
			LogLevel:            "debug",
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 10,
		},
		Auth: auth.DefaultTestAuthConfig(),
	}
}

func newTestServer(t *testing.T, users ...*domain.User) *testServer {
	t.Helper()

	l, logs := logger.NewTestLogger()
	userStore := mocks.NewMockUserStore(users...)
	app := &application{
		config:       newTestConfig(),
		logger:       l,
		userStore:    userStore,
		serviceStore: mocks.NewMockServiceStore(),
	}
	require.NoError(t, app.initServices())

	router, err := app.setupRouter()
	require.NoError(t, err)

	return &testServer{router: router, users: userStore, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// lastIdentityLog returns the most recent service handler log entry.
func (s *testServer) lastIdentityLog(t *testing.T) map[string]any {
	t.Helper()
	var found map[string]any
	for _, e := range s.logs.Entries() {
		if e["msg"] == "listed services" {
			found = e
		}
	}
	require.NotNil(t, found, "service handler did not log the request identity")
	return found
}

func testUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	return &domain.User{
		ID:             uuid.New(),
		Name:           "Ana",
		Email:          email,
		HashedPassword: auth.RequireTestHash(t, password),
		Role:           domain.RoleClient,
	}
}

func TestLoginThenBearerEstablishesIdentity(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testUser(t, "a@x.com", "pw123"))

	rr := s.do(t, http.MethodPost, "/login", "", map[string]string{"email": "a@x.com", "senha": "pw123"})
	require.Equal(t, http.StatusOK, rr.Code)

	var login struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.NotEmpty(t, login.ExpiresAt)

	rr = s.do(t, http.MethodGet, "/servicos", login.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	entry := s.lastIdentityLog(t)
	assert.Equal(t, "authenticated", entry["identity"])
	assert.Equal(t, "a***@x.com", entry["email"])
	assert.NotContains(t, s.logs.String(), login.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testUser(t, "a@x.com", "pw123"))

	rr := s.do(t, http.MethodPost, "/login", "", map[string]string{"email": "a@x.com", "senha": "nope"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials", body["error"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestProtectedRouteWithoutCredential(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testUser(t, "a@x.com", "pw123"))

	tests := []struct {
		name  string
		token string
	}{
		{name: "no header"},
		{name: "garbage token", token: "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodGet, "/servicos", tt.token, nil)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "anonymous", s.lastIdentityLog(t)["identity"])
		})
	}
}

func TestBypassRouteIgnoresCredential(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, testUser(t, "a@x.com", "pw123"))

	rr := s.do(t, http.MethodGet, "/usuarios", "garbage", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, s.users.GetByEmailCalls, "bypass route must not resolve an identity")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "hashed_password")
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/usuarios", "", map[string]string{
		"nome":         "Bia",
		"email":        "bia@x.com",
		"senha":        "segredo1",
		"tipo_usuario": "CLIENTE",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = s.do(t, http.MethodPost, "/login", "", map[string]string{"email": "bia@x.com", "senha": "segredo1"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/servicos", "", map[string]any{
		"titulo":      "Portal",
		"descricao":   "Portal institucional",
		"tecnologias": []string{"Go", "Postgres"},
		"id_cliente":  created.ID,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var svc struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &svc))

	rr = s.do(t, http.MethodGet, "/servicos/"+svc.ID, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/servicos/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Serviço não encontrado")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestSetupRouterRejectsInvalidBypassRule(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	cfg.Auth.BypassRoutes = []string{"usuarios"}
	l, _ := logger.NewTestLogger()
	app := &application{config: cfg, logger: l, userStore: mocks.NewMockUserStore(), serviceStore: mocks.NewMockServiceStore()}
	require.NoError(t, app.initServices())

	_, err := app.setupRouter()
	assert.Error(t, err)
}

func TestInitServicesRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	cfg.Auth.JWTSecret = "short"
	l, _ := logger.NewTestLogger()
	app := &application{config: cfg, logger: l, userStore: mocks.NewMockUserStore(), serviceStore: mocks.NewMockServiceStore()}

	assert.Error(t, app.initServices())
}
