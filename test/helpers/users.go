package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const StrongPassword = "Sup3r!Secret#pw"

// Session is a registered user plus the browser that registered it.
type Session struct {
	Client      *Client
	UserID      string
	Email       string
	AccessToken string
}

// UniqueEmail returns an address no other test uses.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

// RegisterUser signs up a fresh account through the API.
func RegisterUser(t *testing.T, ts *TestServer, prefix string) *Session {
	t.Helper()

	client := ts.NewClient(t)
	email := UniqueEmail(prefix)
	res, body := client.Do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": StrongPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	require.NotEmpty(t, auth.AccessToken)

	return &Session{Client: client, UserID: auth.User.ID, Email: email, AccessToken: auth.AccessToken}
}
