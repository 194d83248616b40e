package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "blog.db")))
	t.Cleanup(func() { DB.Close() })
}

func createUser(t *testing.T, username string) string {
	t.Helper()
	id := NewID()
	_, err := DB.Exec(
		"INSERT INTO users (id, username, email, password, created_at) VALUES (?, ?, ?, ?, ?)",
		id, username, username+"@example.com", "x", time.Now().UTC(),
	)
	require.NoError(t, err)
	return id
}

func TestNewIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.True(t, ValidID(id), "generated id %q should be valid", id)
		require.False(t, seen[id], "ids should not repeat")
		seen[id] = true
	}
}

func TestValidID(t *testing.T) {
	require.True(t, ValidID("5f2b6c4d8e9a0b1c2d3e4f50"))
	require.True(t, ValidID("5F2B6C4D8E9A0B1C2D3E4F50"))
	require.False(t, ValidID(""))
	require.False(t, ValidID("5f2b6c4d8e9a0b1c2d3e4f5"))    // too short
	require.False(t, ValidID("5f2b6c4d8e9a0b1c2d3e4f501")) // too long
	require.False(t, ValidID("5f2b6c4d8e9a0b1c2d3e4g50"))  // non-hex
	require.False(t, ValidID("../../../etc/passwd"))
}
