package models

import "time"

// CommentOrigin is the surface a comment was submitted from.
type CommentOrigin string

const (
	OriginDashboard CommentOrigin = "dashboard"
	OriginPublic    CommentOrigin = "public"
)

// NormalizeOrigin maps a wire source tag onto a known origin. Comments
// stored before the tag existed carry no source and always came from the
// public page, so an empty or unknown tag normalizes to public.
func NormalizeOrigin(source string) CommentOrigin {
	if source == string(OriginDashboard) {
		return OriginDashboard
	}
	return OriginPublic
}

type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"postId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) Origin() CommentOrigin {
	return NormalizeOrigin(c.Source)
}

// CommentCount is one row of the batched counts aggregation. PostID
// marshals as "_id" to match the result shape clients already consume.
type CommentCount struct {
	PostID string `json:"_id"`
	Count  int    `json:"count"`
}

type LikeInfo struct {
	Likes     int    `json:"likes"`
	UserLiked bool   `json:"userLiked"`
	PostID    string `json:"postId"`
}
