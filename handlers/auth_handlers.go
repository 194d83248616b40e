package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blog/database"
	"blog/models"
	"blog/utils"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := utils.EscapeString(strings.TrimSpace(req.Username))
	email := strings.ToLower(utils.EscapeString(strings.TrimSpace(req.Email)))
	password := req.Password

	errors, valid := ValidateRegistration(username, email, password)
	if !valid {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation error",
			"fields": errors,
		})
		return
	}

	var existingUsername, existingEmail string
	err := database.DB.QueryRow(
		"SELECT username, email FROM users WHERE email = ? OR username = ?",
		email, username,
	).Scan(&existingUsername, &existingEmail)
	if err == nil {
		if existingUsername == username {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already exists", "field": "username"})
		} else {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already exists", "field": "email"})
		}
		return
	} else if err != sql.ErrNoRows {
		log.Printf("Database error: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	userID := database.NewID()
	_, err = database.DB.Exec(
		"INSERT INTO users (id, username, email, password, created_at) VALUES (?, ?, ?, ?, ?)",
		userID, username, email, hashed, time.Now().UTC(),
	)
	if err != nil {
		log.Printf("Error inserting user: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User created",
		"userId":  userID,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	var storedPassword string
	err := database.DB.QueryRow(
		"SELECT id, username, email, password FROM users WHERE email = ?", email,
	).Scan(&user.ID, &user.Username, &user.Email, &storedPassword)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "User not found")
		return
	} else if err != nil {
		log.Printf("Database error: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := IssueToken(user)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]string{
			"_id":      user.ID,
			"username": user.Username,
		},
	})
}
