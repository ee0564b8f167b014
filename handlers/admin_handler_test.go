package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, uh *UserHandler, email string) string {
	t.Helper()
	rec := postJSON(uh.Register, "/api/auth/register", `{"email":"`+email+`","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	return user.ID
}

func TestAdminListUsers(t *testing.T) {
	svc := newAccountService(t)
	uh := &UserHandler{Service: svc}
	ah := &AdminHandler{Service: svc}

	registerUser(t, uh, "a@x.com")
	registerUser(t, uh, "b@x.com")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	ah.ListUsers(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0]["email"])
	assert.Equal(t, "b@x.com", users[1]["email"])
	for _, u := range users {
		_, hasPassword := u["password"]
		assert.False(t, hasPassword)
	}
}

func TestAdminUpdateStatus(t *testing.T) {
	svc := newAccountService(t)
	uh := &UserHandler{Service: svc}
	ah := &AdminHandler{Service: svc}

	id := registerUser(t, uh, "a@x.com")

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+id+"/status",
		strings.NewReader(`{"isActive":false}`))
	rec := httptest.NewRecorder()
	ah.UpdateStatus(rec, req, id)
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	assert.Equal(t, false, user["isActive"])

	// Empty body inverts the flag.
	req = httptest.NewRequest(http.MethodPut, "/api/admin/users/"+id+"/status", nil)
	rec = httptest.NewRecorder()
	ah.UpdateStatus(rec, req, id)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	assert.Equal(t, true, user["isActive"])
}

func TestAdminUpdateStatus_UnknownID(t *testing.T) {
	ah := &AdminHandler{Service: newAccountService(t)}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/missing/status",
		strings.NewReader(`{"isActive":false}`))
	rec := httptest.NewRecorder()
	ah.UpdateStatus(rec, req, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDelete(t *testing.T) {
	svc := newAccountService(t)
	uh := &UserHandler{Service: svc}
	ah := &AdminHandler{Service: svc}

	id := registerUser(t, uh, "a@x.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+id, nil)
	rec := httptest.NewRecorder()
	ah.Delete(rec, req, id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)

	// The record is gone.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile?email=a@x.com", nil)
	rec = httptest.NewRecorder()
	uh.Profile(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// And a second delete is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+id, nil)
	rec = httptest.NewRecorder()
	ah.Delete(rec, req, id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
