package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blog/database"
	"blog/models"
	"blog/utils"
)

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ListPosts returns all posts, newest first. Publicly readable.
func ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := database.AllPosts()
	if err != nil {
		log.Printf("Error querying posts: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost creates a post owned by the caller. Author display name and
// owner id both come from the verified token.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := CurrentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "You need to log in to submit a post")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Limits apply to the text as typed; escaping for storage happens after.
	if msg, ok := ValidatePost(req.Title, req.Body); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	title := utils.EscapeString(req.Title)
	body := utils.EscapeString(req.Body)

	post, err := database.InsertPost(models.Post{
		Title:   title,
		Body:    body,
		Author:  claims.Username,
		OwnerID: claims.UserID,
	})
	if err != nil {
		log.Printf("Error inserting post: %v", err)
		writeError(w, http.StatusInternalServerError, "Error saving post")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// ownedPost loads the post in the request path and checks that the caller
// owns it, writing the appropriate error response otherwise.
func ownedPost(w http.ResponseWriter, r *http.Request) (models.Post, *Claims, bool) {
	claims, err := CurrentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "You need to log in")
		return models.Post{}, nil, false
	}

	id := r.PathValue("id")
	if !database.ValidID(id) {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return models.Post{}, nil, false
	}

	post, err := database.PostByID(id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return models.Post{}, nil, false
	} else if err != nil {
		log.Printf("Error fetching post %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error fetching post")
		return models.Post{}, nil, false
	}

	if post.OwnerID != claims.UserID {
		writeError(w, http.StatusForbidden, "You can only modify your own posts")
		return models.Post{}, nil, false
	}
	return post, claims, true
}

func UpdatePost(w http.ResponseWriter, r *http.Request) {
	post, _, ok := ownedPost(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Limits apply to the text as typed; escaping for storage happens after.
	if msg, ok := ValidatePost(req.Title, req.Body); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	title := utils.EscapeString(req.Title)
	body := utils.EscapeString(req.Body)

	updated, err := database.UpdatePost(post.ID, title, body)
	if err != nil {
		log.Printf("Error updating post %s: %v", post.ID, err)
		writeError(w, http.StatusInternalServerError, "Error updating post")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func DeletePost(w http.ResponseWriter, r *http.Request) {
	post, _, ok := ownedPost(w, r)
	if !ok {
		return
	}

	if err := database.DeletePost(post.ID); err != nil {
		log.Printf("Error deleting post %s: %v", post.ID, err)
		writeError(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	writeMessage(w, http.StatusOK, "Post deleted successfully")
}

// LikePost toggles the caller's like on a post.
func LikePost(w http.ResponseWriter, r *http.Request) {
	claims, err := CurrentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "You need to log in to like posts")
		return
	}

	id := r.PathValue("id")
	if !database.ValidID(id) {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	exists, err := database.PostExists(id)
	if err != nil {
		log.Printf("Error checking post %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error liking post")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	info, err := database.ToggleLike(id, claims.UserID)
	if err != nil {
		log.Printf("Error toggling like on post %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error liking post")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GetPostLikes returns like info for one post. A bearer token is optional;
// without one userLiked is always false.
func GetPostLikes(w http.ResponseWriter, r *http.Request) {
	userID := ""
	claims, err := CurrentUser(r)
	if err == nil {
		userID = claims.UserID
	} else if err != ErrNoToken {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	id := r.PathValue("id")
	if !database.ValidID(id) {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	info, err := database.PostLikes(id, userID)
	if err != nil {
		log.Printf("Error fetching likes for post %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error fetching likes")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type likesBatchRequest struct {
	PostIDs []string `json:"postIds"`
}

// LikesBatch returns like info for many posts at once. Malformed ids are
// dropped, not rejected, so one bad id never spoils a page render.
func LikesBatch(w http.ResponseWriter, r *http.Request) {
	userID := ""
	claims, err := CurrentUser(r)
	if err == nil {
		userID = claims.UserID
	} else if err != ErrNoToken {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req likesBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	valid := make([]string, 0, len(req.PostIDs))
	for _, id := range req.PostIDs {
		if database.ValidID(id) {
			valid = append(valid, id)
		}
	}

	infos, err := database.PostLikesBatch(valid, userID)
	if err != nil {
		log.Printf("Error fetching batch likes: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching likes")
		return
	}
	writeJSON(w, http.StatusOK, infos)
}
