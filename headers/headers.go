// headers/headers.go
package headers

import (
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-api-contagem-client/headers/redact"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/version"
	"go.uber.org/zap"
)

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req               *http.Request
	log               logger.Logger
	hideSensitiveData bool
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request.
func NewHeaderHandler(req *http.Request, log logger.Logger, hideSensitiveData bool) *HeaderHandler {
	return &HeaderHandler{
		req:               req,
		log:               log,
		hideSensitiveData: hideSensitiveData,
	}
}

// SetAuthorization sets the Authorization header for the request. The value may be a
// raw token or already carry the "Bearer " prefix. An empty value leaves the header unset.
func (h *HeaderHandler) SetAuthorization(token string) {
	if token == "" {
		return
	}
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetRequestHeaders applies the standard JSON headers, the client User-Agent and, when
// authorization is non-empty, the bearer credential.
func (h *HeaderHandler) SetRequestHeaders(authorization string) {
	h.SetAccept("application/json")
	if h.req.Body != nil && h.req.Body != http.NoBody {
		h.SetContentType("application/json")
	}
	h.SetUserAgent(version.UserAgent())
	h.SetAuthorization(authorization)
	h.LogHeaders()
}

// LogHeaders logs the request headers at debug level, redacting sensitive values when configured.
func (h *HeaderHandler) LogHeaders() {
	redacted := make(map[string]string, len(h.req.Header))
	for name := range h.req.Header {
		redacted[name] = redact.RedactSensitiveHeaderData(h.hideSensitiveData, name, h.req.Header.Get(name))
	}
	h.log.Debug("HTTP Request Headers", zap.Any("Headers", redacted))
}
