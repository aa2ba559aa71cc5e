// status.go
// This package provides helpers for categorizing HTTP status codes.
package status

import (
	"net/http"
)

// IsSuccess reports whether statusCode is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsUnauthorized reports whether statusCode is exactly 401 Unauthorized.
// This is the only status that triggers re-authentication of a protected call.
func IsUnauthorized(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsProxyAuthRequired reports whether statusCode is 407, i.e. an intermediary rejected the request.
func IsProxyAuthRequired(statusCode int) bool {
	return statusCode == http.StatusProxyAuthRequired
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
//
// - 301 Moved Permanently
// - 302 Found
// - 303 See Other
// - 307 Temporary Redirect
// - 308 Permanent Redirect
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}
