// httpclient/client.go
/* The `httpclient` package provides the client for the counting API. It composes the login
exchange, the session state and the token retry policy behind a small facade: authenticate
once, then call the protected counter endpoint as often as needed. An expired or rejected
bearer is refreshed transparently, exactly once per call. */
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-api-contagem-client/apiintegrations/contagem"
	"github.com/deploymenttheory/go-api-contagem-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/proxy"
	"github.com/deploymenttheory/go-api-contagem-client/redirecthandler"
	"github.com/deploymenttheory/go-api-contagem-client/retryhandler"
	"github.com/deploymenttheory/go-api-contagem-client/session"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config ClientConfig
	http   *http.Client

	// Exported
	Logger      logger.Logger
	API         *contagem.API
	Session     *session.State
	Auth        *authenticationhandler.AuthTokenHandler
	Retry       *retryhandler.RetryHandler
	Credentials authenticationhandler.CredentialSource
}

// Options/Variables for Client
type ClientConfig struct {
	// Access
	BaseURL  string
	UserID   string
	Password string

	// Log
	LogLevel            string
	LogOutputFormat     string // Output format of the logs. Use "json" for JSON format, "console" for human-readable format
	LogConsoleSeparator string
	HideSensitiveData   bool

	// Proxy
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string

	// Misc
	CustomTimeout   time.Duration
	FollowRedirects bool
	MaxRedirects    int
}

// BuildClient creates a new counting API client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {
	if populateDefaultValues {
		SetDefaultValuesClientConfig(&config)
	}

	err := validateClientConfig(config)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	//region Logging
	parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
	log := logger.BuildLogger(parsedLogLevel, config.LogOutputFormat, config.LogConsoleSeparator)
	//endregion

	//region HTTP
	log.Info("initializing new http client", zap.String("BaseURL", config.BaseURL))

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log); err != nil {
		log.Error("Failed to set up redirect handler", zap.Error(err))
		return nil, err
	}

	if err := proxy.InitializeProxy(httpClient, config.ProxyURL, config.ProxyUsername, config.ProxyPassword, log); err != nil {
		return nil, err
	}
	//endregion

	client := NewClient(config, httpClient, log)

	log.Debug("New API client initialized",
		zap.String("Base URL", config.BaseURL),
		zap.String("User ID", config.UserID),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.String("Log Separator", config.LogConsoleSeparator),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Bool("Proxy Enabled", config.ProxyURL != ""),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Duration("Custom Timeout", config.CustomTimeout),
	)

	return client, nil
}

// NewClient wires a Client around an already configured http.Client and logger.
// The configuration is used as given; no defaults are applied.
func NewClient(config ClientConfig, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.CustomTimeout}
	}
	api := contagem.NewAPI(config.BaseURL, httpClient, log, config.HideSensitiveData)
	state := session.New()
	auth := authenticationhandler.NewAuthTokenHandler(api, state, log, config.HideSensitiveData)
	credentials := authenticationhandler.StaticCredentials{Username: config.UserID, Password: config.Password}

	return &Client{
		config:      config,
		http:        httpClient,
		Logger:      log,
		API:         api,
		Session:     state,
		Auth:        auth,
		Retry:       retryhandler.NewRetryHandler(state, auth, credentials, log),
		Credentials: credentials,
	}
}

// Authenticate logs in with the configured credentials and returns the resulting token.
// On failure the returned token has Authenticated set to false and the session is cleared.
func (c *Client) Authenticate(ctx context.Context) *session.Token {
	credentials, err := c.Credentials.Credentials()
	if err != nil {
		c.Session.Reset()
		c.Logger.LogAuthTokenError("credentials_unavailable", http.MethodPost, c.API.ConstructURL(contagem.LoginEndpoint), 0, err)
		return &session.Token{Authenticated: false}
	}
	return c.Auth.Authenticate(ctx, credentials)
}

// IsAuthenticatedUsingToken reports whether the session holds an authenticated bearer.
func (c *Client) IsAuthenticatedUsingToken() bool {
	return c.Session.IsAuthenticated()
}

// GetCurrentValue reads the counter through the token retry policy.
func (c *Client) GetCurrentValue(ctx context.Context) (*contagem.CounterResult, error) {
	return retryhandler.Execute(ctx, c.Retry, func(ctx context.Context, call retryhandler.CallContext) (*contagem.CounterResult, error) {
		return c.API.GetCurrentValue(ctx, call.Authorization())
	})
}

// ShowCounterResult reads the counter and logs the result.
func (c *Client) ShowCounterResult(ctx context.Context) error {
	result, err := c.GetCurrentValue(ctx)
	if err != nil {
		return err
	}
	c.Logger.Info("Counter API response", zap.String("Result", logger.FormatJSONPayload(result)))
	return nil
}

// Close discards the session token. The client can authenticate again afterwards.
func (c *Client) Close() {
	c.Session.Reset()
	c.http.CloseIdleConnections()
	c.Logger.Debug("Client closed")
}
