package utils

import "html"

// EscapeString escapes special characters in user-supplied text to
// prevent HTML injection when post or comment content is rendered.
func EscapeString(s string) string {
	return html.EscapeString(s)
}
