package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"disccount_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "lifecycle")

	cookie := s.Client.Cookie(ts.Config.Auth.CookieName)
	require.NotNil(t, cookie, "register sets the refresh cookie")

	// Login by e-mail, case-insensitively.
	res, body := s.Client.Do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username_or_email": "  " + s.Email + "  ",
		"password":          helpers.StrongPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = s.Client.Do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var refreshed struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &refreshed))
	assert.Equal(t, "Bearer", refreshed.TokenType)

	res, body = s.Client.Do(t, http.MethodGet, "/api/v1/users/me", refreshed.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, s.Email)

	res, _ = s.Client.Do(t, http.MethodPost, "/api/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, s.Client.Cookie(ts.Config.Auth.CookieName), "logout clears the cookie")

	res, _ = s.Client.Do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRegister_Conflicts(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "conflict")

	res, body := ts.NewClient(t).Do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    s.Email,
		"password": helpers.StrongPassword,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	res, body = ts.NewClient(t).Do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    helpers.UniqueEmail("weak"),
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "badlogin")

	for _, who := range []string{s.Email, "nobody@example.com"} {
		res, body := ts.NewClient(t).Do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username_or_email": who,
			"password":          "Wrong!Password1",
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	}
}

func TestLogoutAll_RevokesEveryDevice(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "logoutall")

	second := ts.NewClient(t)
	res, body := second.Do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username_or_email": s.Email,
		"password":          helpers.StrongPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = s.Client.Do(t, http.MethodPost, "/api/v1/auth/logout-all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "logout-all needs a bearer token")

	res, body = s.Client.Do(t, http.MethodPost, "/api/v1/auth/logout-all", s.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = second.Do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestDeleteAccount_AllowsReRegistration(t *testing.T) {
	ts := GetTestServer(t)
	s := helpers.RegisterUser(t, ts, "reregister")

	res, body := s.Client.Do(t, http.MethodDelete, "/api/v1/users/me", s.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = s.Client.Do(t, http.MethodGet, "/api/v1/users/me", s.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = ts.NewClient(t).Do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    s.Email,
		"password": helpers.StrongPassword,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}
