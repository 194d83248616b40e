package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"blog/config"
	"blog/models"
)

var cfg = config.Load()

// Init replaces the package configuration. Call before wiring routes.
func Init(c *config.Config) {
	cfg = c
}

var (
	ErrNoToken      = errors.New("no bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the identity a verified bearer token carries.
type Claims struct {
	UserID   string
	Username string
}

// IssueToken signs an HS256 bearer token for the user: sub and username
// identify the caller, jti makes each issued token distinct.
func IssueToken(user models.User) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"jti":      jti.String(),
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a bearer token and extracts its claims.
func ParseToken(tok string) (*Claims, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	username, _ := mc["username"].(string)
	if sub == "" || username == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: sub, Username: username}, nil
}

// CurrentUser resolves the caller from the Authorization header.
// Returns ErrNoToken when no bearer token was sent at all and
// ErrInvalidToken when one was sent but failed verification; handlers
// with optional auth treat the former as anonymous and the latter as 401.
func CurrentUser(r *http.Request) (*Claims, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, ErrNoToken
	}
	return ParseToken(strings.TrimSpace(h[len("Bearer "):]))
}
