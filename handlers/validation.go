package handlers

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxTitle       = 100
	maxPostBody    = 5000
	maxCommentText = 1000
	maxUsername    = 50
	maxEmail       = 100
	maxPassword    = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidatePost checks a post's title and body. Returns an error message
// and false when invalid.
func ValidatePost(title, body string) (string, bool) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return "Title and body are required", false
	}
	if len(title) > maxTitle {
		return fmt.Sprintf("Title cannot be longer than %d characters", maxTitle), false
	}
	if len(body) > maxPostBody {
		return fmt.Sprintf("Body cannot be longer than %d characters", maxPostBody), false
	}
	return "", true
}

// ValidateCommentText checks a comment body after trimming.
func ValidateCommentText(text string) (string, bool) {
	if text == "" {
		return "Text is required", false
	}
	if len(text) > maxCommentText {
		return fmt.Sprintf("Text cannot be longer than %d characters", maxCommentText), false
	}
	return "", true
}

// ValidateRegistration checks the registration fields and returns
// per-field error messages.
func ValidateRegistration(username, email, password string) (map[string]string, bool) {
	errors := make(map[string]string)

	if len(username) == 0 {
		errors["username"] = "Username cannot be empty"
	} else if len(username) > maxUsername {
		errors["username"] = fmt.Sprintf("Username cannot be longer than %d characters", maxUsername)
	}

	if len(email) == 0 {
		errors["email"] = "Email cannot be empty"
	} else if len(email) > maxEmail {
		errors["email"] = fmt.Sprintf("Email cannot be longer than %d characters", maxEmail)
	} else if !emailRegex.MatchString(email) {
		errors["email"] = "Invalid email format"
	}

	if len(password) < 8 {
		errors["password"] = "Password must be at least 8 characters long"
	} else if len(password) > maxPassword {
		errors["password"] = fmt.Sprintf("Password cannot be longer than %d characters", maxPassword)
	}

	if len(errors) > 0 {
		return errors, false
	}
	return nil, true
}
