package status

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(http.StatusUnauthorized))
	assert.False(t, IsUnauthorized(http.StatusForbidden))
	assert.False(t, IsUnauthorized(http.StatusProxyAuthRequired))
	assert.False(t, IsUnauthorized(http.StatusOK))
}

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusMultipleChoices, false},
		{http.StatusUnauthorized, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsSuccess(tt.code), http.StatusText(tt.code))
	}
}

func TestIsRedirectStatusCode(t *testing.T) {
	for _, code := range []int{301, 302, 303, 307, 308} {
		assert.True(t, IsRedirectStatusCode(code), code)
	}
	assert.False(t, IsRedirectStatusCode(http.StatusOK))
	assert.False(t, IsRedirectStatusCode(http.StatusNotModified))

	assert.True(t, IsPermanentRedirect(http.StatusMovedPermanently))
	assert.True(t, IsPermanentRedirect(http.StatusPermanentRedirect))
	assert.False(t, IsPermanentRedirect(http.StatusFound))
	assert.True(t, IsProxyAuthRequired(http.StatusProxyAuthRequired))
}
