package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"blog/database"
	"blog/models"
	"blog/utils"
)

type commentRequest struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	Source   string `json:"source"`
}

// resolveAttribution decides the identity and source tag a comment is
// stored with. A verified caller is a dashboard submission: the username
// always comes from the token and any client-supplied one is ignored,
// though an explicit source override to "public" is honored. Anonymous
// callers are always public, with a blank username defaulting to
// "Anonymous".
func resolveAttribution(claims *Claims, req commentRequest) (username, source string) {
	if claims != nil {
		source = string(models.OriginDashboard)
		if req.Source != "" && models.NormalizeOrigin(req.Source) == models.OriginPublic {
			source = string(models.OriginPublic)
		}
		return claims.Username, source
	}

	username = strings.TrimSpace(req.Username)
	if username == "" {
		username = "Anonymous"
	}
	return username, string(models.OriginPublic)
}

// CommentCounts returns per-post comment counts for the postIds query
// parameter in one aggregation. This is a display affordance: a store
// failure degrades to an empty result instead of an error so the post
// list still renders.
func CommentCounts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("postIds")
	var postIDs []string
	if raw != "" {
		postIDs = strings.Split(raw, ",")
	}

	counts, err := database.CountsForPosts(postIDs)
	if err != nil {
		log.Printf("Error counting comments: %v", err)
		writeJSON(w, http.StatusOK, []models.CommentCount{})
		return
	}

	result := make([]models.CommentCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, models.CommentCount{PostID: id, Count: n})
	}
	writeJSON(w, http.StatusOK, result)
}

// ListComments returns a post's comments, newest first. Publicly readable.
func ListComments(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	if !database.ValidID(postID) {
		writeError(w, http.StatusBadRequest, "Invalid postId")
		return
	}

	comments, err := database.CommentsForPost(postID)
	if err != nil {
		log.Printf("Error querying comments for post %s: %v", postID, err)
		writeError(w, http.StatusInternalServerError, "Failed to get comments")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// SubmitComment persists a comment against an existing post. Auth is
// optional: a valid bearer token makes it a dashboard submission, none
// makes it public, and a bad token is rejected outright.
func SubmitComment(w http.ResponseWriter, r *http.Request) {
	claims, err := CurrentUser(r)
	if err != nil && err != ErrNoToken {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	postID := r.PathValue("postId")
	if !database.ValidID(postID) {
		writeError(w, http.StatusBadRequest, "Invalid postId")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Limits apply to the text as typed; escaping for storage happens after.
	text := strings.TrimSpace(req.Text)
	if msg, ok := ValidateCommentText(text); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	text = utils.EscapeString(text)

	exists, err := database.PostExists(postID)
	if err != nil {
		log.Printf("Error checking post existence: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save comment")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	username, source := resolveAttribution(claims, req)
	comment, err := database.InsertComment(models.Comment{
		PostID:   postID,
		Username: utils.EscapeString(username),
		Text:     text,
		Source:   source,
	})
	if err != nil {
		log.Printf("Error inserting comment: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save comment")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// DeleteComment removes a comment permanently. By default any
// authenticated caller may delete any comment; with the restricted
// policy the caller's username must match the comment's.
func DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, err := CurrentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "You need to log in to delete comments")
		return
	}

	commentID := r.PathValue("commentId")
	if !database.ValidID(commentID) {
		writeError(w, http.StatusBadRequest, "Invalid commentId")
		return
	}

	if !cfg.AnyAuthCanDeleteComments {
		comment, err := database.CommentByID(commentID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Comment not found")
			return
		} else if err != nil {
			log.Printf("Error fetching comment %s: %v", commentID, err)
			writeError(w, http.StatusInternalServerError, "Failed to delete comment")
			return
		}
		if comment.Username != claims.Username {
			writeError(w, http.StatusForbidden, "You can only delete your own comments")
			return
		}
	}

	err = database.DeleteComment(commentID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	} else if err != nil {
		log.Printf("Error deleting comment %s: %v", commentID, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	writeMessage(w, http.StatusOK, "Comment deleted successfully")
}
