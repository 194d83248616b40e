package database

import (
	"database/sql"
	"errors"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB // Exported DB variable

// ErrNotFound is returned by store functions when the referenced row
// does not exist.
var ErrNotFound = errors.New("not found")

// InitDB opens the database at path and creates tables
func InitDB(path string) error {
	var err error
	DB, err = sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return err
	}

	err = createTables()
	if err != nil {
		return err
	}

	return nil
}

func createTables() error {
	// Users table
	_, err := DB.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("Error creating 'users' table: %v", err)
		return err
	}

	// Posts table. owner_id is the canonical ownership reference used by
	// the edit/delete authorization checks; author is only the display
	// name captured at creation time.
	_, err = DB.Exec(`
        CREATE TABLE IF NOT EXISTS posts (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            author TEXT NOT NULL,
            owner_id TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		log.Printf("Error creating 'posts' table: %v", err)
		return err
	}

	// Comments table. username is a free display name, not a users
	// reference, since public visitors comment without an account.
	_, err = DB.Exec(`
        CREATE TABLE IF NOT EXISTS comments (
            id TEXT PRIMARY KEY,
            post_id TEXT NOT NULL,
            username TEXT NOT NULL,
            text TEXT NOT NULL,
            source TEXT NOT NULL DEFAULT 'public',
            created_at DATETIME NOT NULL,
            FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		log.Printf("Error creating 'comments' table: %v", err)
		return err
	}

	_, err = DB.Exec(`
        CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments (post_id);
    `)
	if err != nil {
		log.Printf("Error creating comments index: %v", err)
		return err
	}

	// post_likes table. The UNIQUE constraint gives the like set its set
	// semantics: one row per user per post, so a toggle is a plain
	// delete-or-insert with no lost-update window.
	_, err = DB.Exec(`
        CREATE TABLE IF NOT EXISTS post_likes (
            post_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (post_id, user_id),
            FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE,
            FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		log.Printf("Error creating 'post_likes' table: %v", err)
		return err
	}

	return nil
}
