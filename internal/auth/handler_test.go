package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postLogin(t *testing.T, handler *Handler, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.HandleLogin(w, req)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return w.Code, response
}

func TestHandleLogin_Success(t *testing.T) {
	users := newFakeUserService()
	users.add("user-1", "jane@example.com", "correct-horse")
	svc, _ := newTestAuthService(t, users)
	handler := NewHandler(svc)

	status, response := postLogin(t, handler, `{"email":"jane@example.com","password":"correct-horse"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", response["status"])
	assert.NotEmpty(t, response["token"])
	assert.Equal(t, map[string]interface{}{"id": "user-1", "email": "jane@example.com"}, response["user"])
}

func TestHandleLogin_InvalidCredentialsShareOneResponse(t *testing.T) {
	users := newFakeUserService()
	users.add("user-1", "jane@example.com", "correct-horse")
	svc, _ := newTestAuthService(t, users)
	handler := NewHandler(svc)

	wrongStatus, wrongBody := postLogin(t, handler, `{"email":"jane@example.com","password":"nope"}`)
	unknownStatus, unknownBody := postLogin(t, handler, `{"email":"who@example.com","password":"correct-horse"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.Equal(t, wrongBody, unknownBody)
	assert.Equal(t, "Invalid credentials", wrongBody["message"])
}

func TestHandleLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t, newFakeUserService())

	status, response := postLogin(t, NewHandler(svc), `{"email":"jane@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email and password are required", response["message"])
}

func TestHandleLogin_InvalidBody(t *testing.T) {
	svc, _ := newTestAuthService(t, newFakeUserService())

	status, response := postLogin(t, NewHandler(svc), `{`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", response["message"])
}
