package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRegister(t *testing.T, handler *Handler, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	return res, response
}

func TestHandleRegister_Success(t *testing.T) {
	handler := NewHandler(newTestService(newMockRepository()))

	res, response := postRegister(t, handler, `{"email":"new@example.com","password":"password"}`)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, "new@example.com", response["email"])
	assert.NotEmpty(t, response["id"])
	assert.NotContains(t, response, "password_hash")
}

func TestHandleRegister_ExistingEmailIsBadRequest(t *testing.T) {
	handler := NewHandler(newTestService(newMockRepository()))

	res, _ := postRegister(t, handler, `{"email":"twice@example.com","password":"password"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, response := postRegister(t, handler, `{"email":"twice@example.com","password":"password"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, ErrEmailAlreadyExists.Error(), response["message"])
	assert.Equal(t, float64(http.StatusBadRequest), response["code"])
}

func TestHandleRegister_MissingFields(t *testing.T) {
	handler := NewHandler(newTestService(newMockRepository()))

	res, response := postRegister(t, handler, `{"email":"only@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, ErrMissingCredentials.Error(), response["message"])
}

func TestHandleRegister_InvalidBody(t *testing.T) {
	handler := NewHandler(newTestService(newMockRepository()))

	res, response := postRegister(t, handler, `not json`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid request body", response["message"])
}
