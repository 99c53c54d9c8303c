package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	token, err := c.SignIn(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "/signin", gotPath)
	assert.Equal(t, map[string]string{"username": "alice", "password": "secret123"}, gotBody)
}

func TestSignUpSendsFullPayload(t *testing.T) {
	var got models.SignupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	req := models.SignupRequest{
		Username:  "alice77",
		Name:      "Alice Cooper",
		Email:     "alice@example.com",
		Password:  "secret123",
		Birthdate: "1990-01-01",
		Type:      "fan",
	}
	require.NoError(t, NewClient(srv.URL).SignUp(context.Background(), req))
	assert.Equal(t, req, got)
}

func TestRejectionIsNotAnOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL).SignIn(context.Background(), "alice", "wrong-pass")
	require.ErrorIs(t, err, ErrRejected)
}

func TestProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	err := NewClient(srv.URL).ForgotPassword(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}
