// retryhandler/retryhandler.go

/* Package retryhandler runs protected calls under the token retry policy: a call that fails
with 401 Unauthorized triggers one re-authentication, and the call is repeated exactly once
with the refreshed bearer. Any other failure, and any failure of the repeated call, is final. */
package retryhandler

import (
	"context"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-api-contagem-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/response"
	"github.com/deploymenttheory/go-api-contagem-client/session"
	"github.com/deploymenttheory/go-api-contagem-client/status"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned when re-authentication during a retry did not yield an authenticated token.
var ErrInvalidToken = errors.New("invalid token")

// InvalidTokenError carries the context of a failed re-authentication. It matches ErrInvalidToken with errors.Is.
type InvalidTokenError struct {
	RequestID string
	Err       error // credential source failure, nil when the login itself failed
}

func (e *InvalidTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: request %s: %v", ErrInvalidToken, e.RequestID, e.Err)
	}
	return fmt.Sprintf("%v: request %s: re-authentication failed", ErrInvalidToken, e.RequestID)
}

func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Err
}

// CallContext carries the bearer for one attempt of a protected call.
type CallContext struct {
	AccessToken string // raw bearer; empty when no authenticated token is known
	RequestID   string // shared by the first attempt and its retry
	Attempt     int    // 1 for the first attempt, 2 for the retry
}

// Authorization returns the Authorization header value, or "" when there is no bearer.
func (c CallContext) Authorization() string {
	if c.AccessToken == "" {
		return ""
	}
	return "Bearer " + c.AccessToken
}

// Operation performs one call to a protected endpoint using the bearer found in call.
type Operation[T any] func(ctx context.Context, call CallContext) (T, error)

// Authenticator refreshes the session token.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials authenticationhandler.ClientCredentials) *session.Token
}

// RetryHandler wraps protected calls with the single re-authentication retry.
type RetryHandler struct {
	Session       *session.State
	Authenticator Authenticator
	Credentials   authenticationhandler.CredentialSource
	Logger        logger.Logger
}

// NewRetryHandler returns a RetryHandler reading tokens from state and refreshing them through auth.
func NewRetryHandler(state *session.State, auth Authenticator, credentials authenticationhandler.CredentialSource, log logger.Logger) *RetryHandler {
	return &RetryHandler{
		Session:       state,
		Authenticator: auth,
		Credentials:   credentials,
		Logger:        log,
	}
}

// IsUnauthorized reports whether err carries an API rejection with status 401.
// Only *response.APIError counts; a 401 reported by any other error type is not retried.
func IsUnauthorized(err error) bool {
	var apiErr *response.APIError
	return errors.As(err, &apiErr) && status.IsUnauthorized(apiErr.StatusCode)
}

// attemptState is the position of a call in the retry state machine.
type attemptState int

const (
	firstAttempt attemptState = iota
	retried
)

// Execute runs op, re-authenticating and repeating it once if the first attempt is unauthorized.
// The outcome of the repeated attempt is final whatever its error.
func Execute[T any](ctx context.Context, h *RetryHandler, op Operation[T]) (T, error) {
	call := CallContext{
		AccessToken: h.Session.AccessToken(),
		RequestID:   uuid.NewString(),
		Attempt:     1,
	}
	log := h.Logger.With(zap.String("request_id", call.RequestID))

	state := firstAttempt
	for {
		result, err := op(ctx, call)
		switch {
		case err == nil:
			return result, nil
		case state == retried:
			log.Debug("Protected call failed after re-authentication", zap.Int("attempt", call.Attempt), zap.Error(err))
			return result, err
		case !IsUnauthorized(err):
			log.Debug("Protected call failed, not retrying", zap.Int("attempt", call.Attempt), zap.Error(err))
			return result, err
		}

		state = retried
		log.Warn("Token expired or user without permission", zap.Error(err))
		log.LogRetryAttempt("retry_attempt", call.RequestID, call.Attempt+1, "unauthorized", err)

		accessToken, credErr := h.reauthenticate(ctx)
		if accessToken == "" {
			var zero T
			invalid := &InvalidTokenError{RequestID: call.RequestID, Err: credErr}
			log.Error("Invalid token", zap.Error(invalid))
			return zero, invalid
		}

		call.AccessToken = accessToken
		call.Attempt++
	}
}

// reauthenticate refreshes the session token and returns its raw bearer, or "" when no
// authenticated token was obtained. The error is only set when the credential source failed.
func (h *RetryHandler) reauthenticate(ctx context.Context) (string, error) {
	credentials, err := h.Credentials.Credentials()
	if err != nil {
		h.Session.Reset()
		return "", err
	}

	token := h.Authenticator.Authenticate(ctx, credentials)
	if token == nil || !token.Authenticated {
		return "", nil
	}
	return token.AccessToken, nil
}
