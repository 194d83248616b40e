package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blog/config"
	"blog/database"
	"blog/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                "test-secret",
		TokenTTL:                 time.Hour,
		AnyAuthCanDeleteComments: true,
	}
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	return setupRouterWithConfig(t, testConfig())
}

func setupRouterWithConfig(t *testing.T, c *config.Config) http.Handler {
	t.Helper()
	Init(c)
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "blog.db")))
	t.Cleanup(func() { database.DB.Close() })
	return NewRouter()
}

func doReq(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec := doReq(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doReq(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody[map[string]any](t, rec)
	token, _ := out["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createTestPost(t *testing.T, h http.Handler, token, title string) models.Post {
	t.Helper()
	rec := doReq(t, h, http.MethodPost, "/api/posts", token, map[string]string{
		"title": title,
		"body":  "some body text",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[models.Post](t, rec)
}
