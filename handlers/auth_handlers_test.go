package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/database"
)

func TestRegisterAndLogin(t *testing.T) {
	h := setupRouter(t)

	rec := doReq(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	out := decodeBody[map[string]string](t, rec)
	assert.True(t, database.ValidID(out["userId"]))

	// Email lookup is case-insensitive because it is stored lowercased.
	rec = doReq(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decodeBody[map[string]any](t, rec)

	claims, err := ParseToken(login["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, out["userId"], claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	h := setupRouter(t)

	rec := doReq(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeBody[map[string]any](t, rec)
	fields, ok := out["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegisterDuplicate(t *testing.T) {
	h := setupRouter(t)
	registerAndLogin(t, h, "alice")

	rec := doReq(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username", decodeBody[map[string]string](t, rec)["field"])

	rec = doReq(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email", decodeBody[map[string]string](t, rec)["field"])
}

func TestLoginFailures(t *testing.T) {
	h := setupRouter(t)
	registerAndLogin(t, h, "alice")

	rec := doReq(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
