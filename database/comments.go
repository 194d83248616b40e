package database

import (
	"database/sql"
	"strings"
	"time"

	"blog/models"
)

// InsertComment persists a new comment, assigning its id and creation time.
// The post reference is checked by the caller; the foreign key backstops it.
func InsertComment(c models.Comment) (models.Comment, error) {
	c.ID = NewID()
	c.CreatedAt = time.Now().UTC()

	_, err := DB.Exec(
		"INSERT INTO comments (id, post_id, username, text, source, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.PostID, c.Username, c.Text, c.Source, c.CreatedAt,
	)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// CommentsForPost returns a post's comments, newest first.
func CommentsForPost(postID string) ([]models.Comment, error) {
	rows, err := DB.Query(
		"SELECT id, post_id, username, text, source, created_at FROM comments WHERE post_id = ? ORDER BY created_at DESC, id DESC",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Username, &c.Text, &c.Source, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func CommentByID(id string) (models.Comment, error) {
	var c models.Comment
	err := DB.QueryRow(
		"SELECT id, post_id, username, text, source, created_at FROM comments WHERE id = ?", id,
	).Scan(&c.ID, &c.PostID, &c.Username, &c.Text, &c.Source, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Comment{}, ErrNotFound
	}
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func DeleteComment(id string) error {
	res, err := DB.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountsForPosts returns per-post comment counts in one grouped query.
// Malformed ids are dropped before querying; posts without comments are
// absent from the result, which callers read as zero.
func CountsForPosts(postIDs []string) (map[string]int, error) {
	valid := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		if ValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return map[string]int{}, nil
	}

	placeholders := strings.Repeat("?,", len(valid))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(valid))
	for i, id := range valid {
		args[i] = id
	}

	rows, err := DB.Query(
		"SELECT post_id, COUNT(*) FROM comments WHERE post_id IN ("+placeholders+") GROUP BY post_id",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
