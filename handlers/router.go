package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route onto a mux wrapped with request counting.
func NewRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", Register)
	mux.HandleFunc("POST /api/auth/login", Login)

	mux.HandleFunc("GET /api/posts", ListPosts)
	mux.HandleFunc("POST /api/posts", CreatePost)
	mux.HandleFunc("PUT /api/posts/{id}", UpdatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", DeletePost)
	mux.HandleFunc("POST /api/posts/likes/batch", LikesBatch)
	mux.HandleFunc("POST /api/posts/{id}/like", LikePost)
	mux.HandleFunc("GET /api/posts/{id}/likes", GetPostLikes)

	mux.HandleFunc("GET /api/comments/counts", CommentCounts)
	mux.HandleFunc("GET /api/comments/{postId}", ListComments)
	mux.HandleFunc("POST /api/comments/{postId}", SubmitComment)
	mux.HandleFunc("DELETE /api/comments/{commentId}", DeleteComment)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return CountRequests(mux)
}
