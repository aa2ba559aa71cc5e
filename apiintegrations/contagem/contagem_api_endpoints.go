package contagem

import (
	"context"
	"net/http"
)

// PostCredentials posts the credentials to the login endpoint and returns the token document.
func (a *API) PostCredentials(ctx context.Context, credentials LoginRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := a.doRequest(ctx, http.MethodPost, LoginEndpoint, "", credentials, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// GetCurrentValue calls the protected counter endpoint. authorization is the full
// Authorization header value; when empty the request is sent without credentials.
func (a *API) GetCurrentValue(ctx context.Context, authorization string) (*CounterResult, error) {
	var result CounterResult
	if err := a.doRequest(ctx, http.MethodGet, CounterEndpoint, authorization, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
