// Package client is a Go client for the blog REST API. It covers the
// surfaces the notification tracker needs (posts and comments) plus the
// authenticated write operations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog/models"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"username": username, "email": email, "password": password}, nil)
}

// Login authenticates against the server and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Posts returns all posts, newest first.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostIDs returns the ids of all posts; it satisfies notify.PostSource.
func (c *Client) PostIDs(ctx context.Context) ([]string, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids, nil
}

// CommentsForPost returns a post's comments, newest first; it satisfies
// notify.CommentSource.
func (c *Client) CommentsForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, "/api/comments/"+postID, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentCounts returns per-post comment counts; posts absent from the
// map have no comments.
func (c *Client) CommentCounts(ctx context.Context, postIDs []string) (map[string]int, error) {
	path := "/api/comments/counts?postIds=" + url.QueryEscape(strings.Join(postIDs, ","))
	var rows []models.CommentCount
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

type CommentRequest struct {
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
	Source   string `json:"source,omitempty"`
}

// SubmitComment posts a comment and returns the persisted record,
// including the server-assigned id.
func (c *Client) SubmitComment(ctx context.Context, postID string, req CommentRequest) (models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments/"+postID, req, &comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+commentID, nil, nil)
}

func (c *Client) CreatePost(ctx context.Context, title, body string) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPost, "/api/posts",
		map[string]string{"title": title, "body": body}, &post)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (c *Client) ToggleLike(ctx context.Context, postID string) (models.LikeInfo, error) {
	var info models.LikeInfo
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/like", nil, &info); err != nil {
		return models.LikeInfo{}, err
	}
	return info, nil
}

func (c *Client) PostLikes(ctx context.Context, postID string) (models.LikeInfo, error) {
	var info models.LikeInfo
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+postID+"/likes", nil, &info); err != nil {
		return models.LikeInfo{}, err
	}
	return info, nil
}

// APIError is a non-2xx response decoded from the server's error payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		msg := payload.Error
		if msg == "" {
			msg = payload.Message
		}
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return &APIError{StatusCode: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
