package client_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/client"
	"blog/config"
	"blog/database"
	"blog/handlers"
	"blog/notify"
)

var (
	_ notify.CommentSource = (*client.Client)(nil)
	_ notify.PostSource    = (*client.Client)(nil)
)

func startServer(t *testing.T) *client.Client {
	t.Helper()
	handlers.Init(&config.Config{
		JWTSecret:                "test-secret",
		TokenTTL:                 time.Hour,
		AnyAuthCanDeleteComments: true,
	})
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "blog.db")))
	t.Cleanup(func() { database.DB.Close() })

	srv := httptest.NewServer(handlers.NewRouter())
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestClientEndToEnd(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)

	require.NoError(t, c.Register(ctx, "alice", "alice@example.com", "password123"))
	require.NoError(t, c.Login(ctx, "alice@example.com", "password123"))

	post, err := c.CreatePost(ctx, "Hello", "First post body")
	require.NoError(t, err)
	assert.True(t, database.ValidID(post.ID))
	assert.Equal(t, "alice", post.Author)

	posts, err := c.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	ids, err := c.PostIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, ids)

	comment, err := c.SubmitComment(ctx, post.ID, client.CommentRequest{
		Text:     "a reply",
		Username: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", comment.Username)
	assert.Equal(t, "dashboard", comment.Source)

	comments, err := c.CommentsForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	counts, err := c.CommentCounts(ctx, []string{post.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{post.ID: 1}, counts)

	info, err := c.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Likes)
	assert.True(t, info.UserLiked)

	info, err = c.PostLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Likes)

	require.NoError(t, c.DeleteComment(ctx, comment.ID))
	counts, err = c.CommentCounts(ctx, []string{post.ID})
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestClientAnonymousComment(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	require.NoError(t, c.Register(ctx, "alice", "alice@example.com", "password123"))
	require.NoError(t, c.Login(ctx, "alice@example.com", "password123"))
	post, err := c.CreatePost(ctx, "Hello", "body")
	require.NoError(t, err)

	anon := client.New(c.BaseURL)
	comment, err := anon.SubmitComment(ctx, post.ID, client.CommentRequest{Text: "drive-by"})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", comment.Username)
	assert.Equal(t, "public", comment.Source)
}

func TestClientAPIError(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	require.NoError(t, c.Register(ctx, "alice", "alice@example.com", "password123"))
	require.NoError(t, c.Login(ctx, "alice@example.com", "password123"))

	err := c.DeleteComment(ctx, "not-a-valid-id")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "Invalid commentId", apiErr.Message)
}

func TestClientTrackerIntegration(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	require.NoError(t, c.Register(ctx, "alice", "alice@example.com", "password123"))
	require.NoError(t, c.Login(ctx, "alice@example.com", "password123"))
	post, err := c.CreatePost(ctx, "watched", "body")
	require.NoError(t, err)

	tracker, err := notify.NewTracker(notify.NewFileStore(filepath.Join(t.TempDir(), "state.json")))
	require.NoError(t, err)

	// No comments yet: nothing to flag.
	assert.False(t, tracker.Poll(ctx, c, []string{post.ID}))

	// A public visitor comments; the next poll flags the post.
	anon := client.New(c.BaseURL)
	_, err = anon.SubmitComment(ctx, post.ID, client.CommentRequest{Text: "hi", Username: "carol"})
	require.NoError(t, err)
	assert.True(t, tracker.Poll(ctx, c, []string{post.ID}))
	assert.True(t, tracker.HasUnseen(post.ID))

	// Opening the panel acknowledges; the same comment stays seen.
	_, hadUnseen, err := tracker.Acknowledge(post.ID)
	require.NoError(t, err)
	assert.True(t, hadUnseen)
	assert.False(t, tracker.Poll(ctx, c, []string{post.ID}))

	// Replying from the dashboard never re-flags the post for its author.
	_, err = c.SubmitComment(ctx, post.ID, client.CommentRequest{Text: "thanks!"})
	require.NoError(t, err)
	require.NoError(t, tracker.NoteOwnComment(post.ID))
	assert.False(t, tracker.Poll(ctx, c, []string{post.ID}))
}
