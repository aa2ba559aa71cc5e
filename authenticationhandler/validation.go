// authenticationhandler/validation.go

package authenticationhandler

import (
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_\-\+=\[\]{\}\\|;:'",<.>/?]+$`)

// IsValidUsername checks if the provided username meets password safe validation criteria.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidUsername(username string) (bool, string) {
	if usernameRegex.MatchString(username) {
		return true, ""
	}
	return false, "Username must contain only alphanumeric characters and password safe special characters (!@#$%^&*()_-+=[{]}\\|;:'\",<.>/?)."
}

// IsValidPassword checks that a password was supplied.
// The service owns the password policy; the client only refuses to send a blank secret.
func IsValidPassword(password string) (bool, string) {
	if strings.TrimSpace(password) != "" {
		return true, ""
	}
	return false, "Password must not be empty."
}
