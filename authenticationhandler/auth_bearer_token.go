// authenticationhandler/auth_bearer_token.go
package authenticationhandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/deploymenttheory/go-api-contagem-client/apiintegrations/contagem"
	"github.com/deploymenttheory/go-api-contagem-client/headers/redact"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/response"
	"github.com/deploymenttheory/go-api-contagem-client/session"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is reported when credentials fail local validation.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is reported when the login endpoint answers without an authenticated token.
	ErrNotAuthenticated = errors.New("login endpoint did not authenticate the user")
)

// Authenticate exchanges credentials for a bearer token and stores the outcome in the session.
// On success the returned token is authenticated and becomes the session's current token.
// On any failure the session is reset, the failure is logged, and an unauthenticated token is returned.
func (h *AuthTokenHandler) Authenticate(ctx context.Context, credentials ClientCredentials) *session.Token {
	h.Logger.Debug("Attempting to obtain token for user", zap.String("Username", credentials.Username))

	token, err := h.obtainToken(ctx, credentials)
	if err != nil {
		h.Session.Reset()
		h.logFailure(err)
		return &session.Token{Authenticated: false}
	}

	h.Session.Replace(token)

	logged := *token
	logged.AccessToken = redact.RedactSensitiveHeaderData(h.HideSensitiveData, "AccessToken", token.AccessToken)
	h.Logger.Info("JWT token", zap.String("Token", logger.FormatJSONPayload(logged)))
	h.Logger.Info("JWT access token payload", zap.String("Payload", logger.FormatJSONPayload(token.Payload)))

	return token
}

// obtainToken runs the exchange and builds the authenticated token.
func (h *AuthTokenHandler) obtainToken(ctx context.Context, credentials ClientCredentials) (*session.Token, error) {
	if ok, msg := IsValidUsername(credentials.Username); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}
	if ok, msg := IsValidPassword(credentials.Password); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}

	tokenResp, err := h.LoginAPI.PostCredentials(ctx, contagem.LoginRequest{
		UserID:   credentials.Username,
		Password: credentials.Password,
	})
	if err != nil {
		return nil, err
	}

	if !tokenResp.Authenticated || tokenResp.AccessToken == "" {
		if tokenResp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrNotAuthenticated, tokenResp.Message)
		}
		return nil, ErrNotAuthenticated
	}

	payload, err := DecodeAccessToken(tokenResp.AccessToken)
	if err != nil {
		return nil, err
	}

	return &session.Token{
		Authenticated: true,
		Created:       tokenResp.Created,
		Expiration:    tokenResp.Expiration,
		AccessToken:   tokenResp.AccessToken,
		Message:       tokenResp.Message,
		Payload:       payload,
	}, nil
}

// logFailure reports a failed exchange with as much request context as the error carries.
func (h *AuthTokenHandler) logFailure(err error) {
	url := contagem.LoginEndpoint
	var transportErr *response.TransportError
	if errors.As(err, &transportErr) {
		url = transportErr.URL
	}

	statusCode := 0
	var apiErr *response.APIError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.StatusCode
	}

	h.Logger.LogAuthTokenError("authentication_failed", http.MethodPost, url, statusCode, err)
}
