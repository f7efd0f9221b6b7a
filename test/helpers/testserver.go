package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"disccount_backend/database"
	"disccount_backend/internal/app"
	"disccount_backend/internal/config"
	"disccount_backend/internal/email"
	"disccount_backend/internal/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestDatabaseEnv = "TEST_DATABASE_URL"

// TestServer runs the full router over TLS against a real PostgreSQL so the
// Secure refresh cookie round-trips through a cookie jar.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer skips the test when TEST_DATABASE_URL is not set.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv(TestDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping integration test", TestDatabaseEnv)
	}

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.DSN = dsn
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.Issuer = "disccount"
	cfg.JWT.AccessTTLMinutes = 15
	cfg.JWT.RefreshTTLDays = 30
	cfg.Auth.CookieName = "refreshToken"
	cfg.Auth.PasswordMinLength = 12
	require.NoError(t, cfg.Validate())

	logger.Init(cfg.Server.Env)

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	require.NoError(t, err, "connect to test database")
	require.NoError(t, database.Migrate(ctx, db), "migrate test database")

	router := app.SetupRouter(cfg, db, email.NoopSender{})
	server := httptest.NewTLSServer(router)

	return &TestServer{Server: server, DB: db, Config: cfg}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables empties every application table.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE watchlist_items, pinned_places, pinned_stores, notifications, digital_cards, shopping_list_items, shopping_lists, refresh_tokens, app_users CASCADE").Error
	require.NoError(t, err, "truncate tables")
}

// Client is an HTTP client with its own cookie jar, i.e. one browser.
type Client struct {
	ts   *TestServer
	http *http.Client
}

func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	c := ts.Server.Client()
	c.Jar = jar
	return &Client{ts: ts, http: c}
}

// Do sends body as JSON with an optional bearer token and returns the
// response together with its body.
func (c *Client) Do(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(resBody)
}

// Cookie returns the named cookie the jar would send to the server.
func (c *Client) Cookie(name string) *http.Cookie {
	req, _ := http.NewRequest(http.MethodGet, c.ts.Server.URL, nil)
	for _, ck := range c.http.Jar.Cookies(req.URL) {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
