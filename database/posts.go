package database

import (
	"database/sql"
	"time"

	"blog/models"
)

// InsertPost persists a new post, assigning its id and creation time.
func InsertPost(p models.Post) (models.Post, error) {
	p.ID = NewID()
	p.CreatedAt = time.Now().UTC()

	_, err := DB.Exec(
		"INSERT INTO posts (id, title, body, author, owner_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Title, p.Body, p.Author, p.OwnerID, p.CreatedAt,
	)
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// AllPosts returns every post, newest first.
func AllPosts() ([]models.Post, error) {
	rows, err := DB.Query(
		"SELECT id, title, body, author, owner_id, created_at FROM posts ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func PostByID(id string) (models.Post, error) {
	var p models.Post
	err := DB.QueryRow(
		"SELECT id, title, body, author, owner_id, created_at FROM posts WHERE id = ?", id,
	).Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.OwnerID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func PostExists(id string) (bool, error) {
	var exists bool
	err := DB.QueryRow("SELECT EXISTS (SELECT 1 FROM posts WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

// UpdatePost replaces a post's title and body and returns the updated row.
func UpdatePost(id, title, body string) (models.Post, error) {
	res, err := DB.Exec("UPDATE posts SET title = ?, body = ? WHERE id = ?", title, body, id)
	if err != nil {
		return models.Post{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Post{}, err
	}
	if n == 0 {
		return models.Post{}, ErrNotFound
	}
	return PostByID(id)
}

func DeletePost(id string) error {
	res, err := DB.Exec("DELETE FROM posts WHERE id = ?", id)
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
