package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stagepass/dstore"
	"stagepass/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(h httprouter.Handle, method, target, body string, params ...httprouter.Param) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	h(w, r, httprouter.Params(params))
	return w
}

func userParam(id string) httprouter.Param {
	return httprouter.Param{Key: "userId", Value: id}
}

func createUser(t *testing.T, e *Engine) models.User {
	t.Helper()
	w := do(e.CreateUser, http.MethodPost, "/users/create", `{"username":"alice","bio":"jazz fan","dob":"1990-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestCreateUser(t *testing.T) {
	e := NewEngine(dstore.NewMemory())

	user := createUser(t, e)
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "jazz fan", user.Bio)
	assert.Equal(t, "1990-01-01", user.DOB)
}

func TestCreateUserValidationIsExhaustive(t *testing.T) {
	e := NewEngine(dstore.NewMemory())

	w := do(e.CreateUser, http.MethodPost, "/users/create", `{"username":"alice"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
	assert.Contains(t, resp.Errors, "bio is a required field")
	assert.Contains(t, resp.Errors, "dob is a required field")
}

func TestGetUserRoundTrip(t *testing.T) {
	e := NewEngine(dstore.NewMemory())
	created := createUser(t, e)

	w := do(e.GetUser, http.MethodGet, "/users/"+created.UserID, "", userParam(created.UserID))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestGetUserNotFound(t *testing.T) {
	e := NewEngine(dstore.NewMemory())

	w := do(e.GetUser, http.MethodGet, "/users/unknown-id", "", userParam("unknown-id"))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

// The request body fully replaces the stored record; only userid and created_at
// carry over.
func TestUpdateUserOverwrites(t *testing.T) {
	e := NewEngine(dstore.NewMemory())
	created := createUser(t, e)

	body := `{"username":"alice","bio":"touring","dob":"1990-01-01"}`
	w := do(e.UpdateUser, http.MethodPut, "/users/"+created.UserID, body, userParam(created.UserID))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, "touring", got.Bio)
}

func TestUpdateUserNotFound(t *testing.T) {
	e := NewEngine(dstore.NewMemory())

	body := `{"username":"alice","bio":"touring","dob":"1990-01-01"}`
	w := do(e.UpdateUser, http.MethodPut, "/users/unknown-id", body, userParam("unknown-id"))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	e := NewEngine(dstore.NewMemory())
	created := createUser(t, e)

	w := do(e.DeleteUser, http.MethodDelete, "/users/"+created.UserID, "", userParam(created.UserID))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	w = do(e.GetUser, http.MethodGet, "/users/"+created.UserID, "", userParam(created.UserID))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUsers(t *testing.T) {
	e := NewEngine(dstore.NewMemory())

	w := do(e.GetUsers, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	createUser(t, e)
	w = do(e.GetUsers, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}
