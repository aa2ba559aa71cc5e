// authenticationhandler/authenticationhandler.go

/* Package authenticationhandler performs the login exchange against the counting API.
It posts user credentials, decodes the returned JWT and records the outcome in the
session state. Failures never escape as errors; callers inspect Token.Authenticated. */
package authenticationhandler

import (
	"context"

	"github.com/deploymenttheory/go-api-contagem-client/apiintegrations/contagem"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/session"
)

// ClientCredentials holds the credentials necessary for authentication.
type ClientCredentials struct {
	Username string
	Password string
}

// CredentialSource supplies credentials on demand, at every authentication attempt.
type CredentialSource interface {
	Credentials() (ClientCredentials, error)
}

// StaticCredentials is a CredentialSource backed by fixed configuration values.
type StaticCredentials ClientCredentials

// Credentials returns the configured user and password.
func (s StaticCredentials) Credentials() (ClientCredentials, error) {
	return ClientCredentials(s), nil
}

// LoginAPI is the auth endpoint capability.
type LoginAPI interface {
	PostCredentials(ctx context.Context, credentials contagem.LoginRequest) (*contagem.TokenResponse, error)
}

// AuthTokenHandler manages authentication tokens.
type AuthTokenHandler struct {
	LoginAPI          LoginAPI       // LoginAPI performs the credential exchange.
	Session           *session.State // Session receives the outcome of every exchange.
	Logger            logger.Logger  // Logger provides structured logging capabilities.
	HideSensitiveData bool           // HideSensitiveData redacts the raw access token in logs.
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler.
func NewAuthTokenHandler(api LoginAPI, state *session.State, log logger.Logger, hideSensitiveData bool) *AuthTokenHandler {
	return &AuthTokenHandler{
		LoginAPI:          api,
		Session:           state,
		Logger:            log,
		HideSensitiveData: hideSensitiveData,
	}
}
