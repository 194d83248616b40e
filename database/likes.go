package database

import (
	"strings"

	"blog/models"
)

// ToggleLike flips userID's membership in postID's like set and returns
// the resulting state. Delete-then-insert inside one transaction, with
// the (post_id, user_id) primary key, keeps concurrent toggles by
// different users from dropping each other's likes.
func ToggleLike(postID, userID string) (models.LikeInfo, error) {
	tx, err := DB.Begin()
	if err != nil {
		return models.LikeInfo{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return models.LikeInfo{}, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return models.LikeInfo{}, err
	}

	liked := false
	if removed == 0 {
		if _, err := tx.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", postID, userID); err != nil {
			return models.LikeInfo{}, err
		}
		liked = true
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM post_likes WHERE post_id = ?", postID).Scan(&count); err != nil {
		return models.LikeInfo{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.LikeInfo{}, err
	}
	return models.LikeInfo{Likes: count, UserLiked: liked, PostID: postID}, nil
}

// PostLikes returns postID's like count and whether userID is in the like
// set. An empty userID (anonymous caller) always reads as not liked.
func PostLikes(postID, userID string) (models.LikeInfo, error) {
	info := models.LikeInfo{PostID: postID}
	if err := DB.QueryRow("SELECT COUNT(*) FROM post_likes WHERE post_id = ?", postID).Scan(&info.Likes); err != nil {
		return models.LikeInfo{}, err
	}
	if userID != "" {
		err := DB.QueryRow(
			"SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = ? AND user_id = ?)",
			postID, userID,
		).Scan(&info.UserLiked)
		if err != nil {
			return models.LikeInfo{}, err
		}
	}
	return info, nil
}

// PostLikesBatch resolves like info for many posts in two grouped queries
// instead of a pair per post. Posts with no likes still appear in the
// result with a zero count.
func PostLikesBatch(postIDs []string, userID string) (map[string]models.LikeInfo, error) {
	result := make(map[string]models.LikeInfo, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	for _, id := range postIDs {
		result[id] = models.LikeInfo{PostID: id}
	}

	placeholders := strings.Repeat("?,", len(postIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		args[i] = id
	}

	rows, err := DB.Query(
		"SELECT post_id, COUNT(*) FROM post_likes WHERE post_id IN ("+placeholders+") GROUP BY post_id",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		info := result[id]
		info.Likes = n
		result[id] = info
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if userID == "" {
		return result, nil
	}

	likedArgs := append(append([]any{}, args...), userID)
	likedRows, err := DB.Query(
		"SELECT post_id FROM post_likes WHERE post_id IN ("+placeholders+") AND user_id = ?",
		likedArgs...,
	)
	if err != nil {
		return nil, err
	}
	defer likedRows.Close()
	for likedRows.Next() {
		var id string
		if err := likedRows.Scan(&id); err != nil {
			return nil, err
		}
		info := result[id]
		info.UserLiked = true
		result[id] = info
	}
	return result, likedRows.Err()
}
