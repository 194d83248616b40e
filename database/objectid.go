package database

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a 24-character hex identifier: a 4-byte unix-seconds
// prefix followed by 8 random bytes, so ids sort by creation time.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ValidID reports whether s is a well-formed 24-character hex identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
