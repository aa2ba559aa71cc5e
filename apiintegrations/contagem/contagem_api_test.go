package contagem

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPI(server.URL+"/", server.Client(), logger.NewNopLogger(), false)
}

func TestAPI_PostCredentials(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, LoginEndpoint, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, LoginRequest{UserID: "usr01", Password: "Pwd01"}, body)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"authenticated":true,"created":"2026-10-14 10:00:00","expiration":"2026-10-14 10:01:00","accessToken":"abc","message":"OK"}`))
	})

	token, err := api.PostCredentials(context.Background(), LoginRequest{UserID: "usr01", Password: "Pwd01"})

	require.NoError(t, err)
	assert.True(t, token.Authenticated)
	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, "OK", token.Message)
}

func TestAPI_GetCurrentValue(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, CounterEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valorAtual":3,"local":"host-1","kernel":"Linux","framework":".NET 8","mensagem":"Valor atual do contador"}`))
	})

	result, err := api.GetCurrentValue(context.Background(), "Bearer abc")

	require.NoError(t, err)
	assert.Equal(t, &CounterResult{
		CurrentValue: 3,
		Local:        "host-1",
		Kernel:       "Linux",
		Framework:    ".NET 8",
		Message:      "Valor atual do contador",
	}, result)
}

func TestAPI_GetCurrentValue_WithoutAuthorization(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.GetCurrentValue(context.Background(), "")

	var apiErr *response.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAPI_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantAPI   bool
		wantProxy bool
	}{
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"server error", http.StatusInternalServerError, true, false},
		{"proxy auth", http.StatusProxyAuthRequired, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := api.GetCurrentValue(context.Background(), "Bearer abc")
			require.Error(t, err)

			var transportErr *response.TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, http.MethodGet, transportErr.Method)

			var apiErr *response.APIError
			assert.Equal(t, tt.wantAPI, errors.As(err, &apiErr))
			var proxyErr *response.ProxyError
			assert.Equal(t, tt.wantProxy, errors.As(err, &proxyErr))
		})
	}
}

func TestAPI_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	api := NewAPI(server.URL, server.Client(), logger.NewNopLogger(), false)
	server.Close()

	_, err := api.PostCredentials(context.Background(), LoginRequest{UserID: "usr01", Password: "Pwd01"})

	var transportErr *response.TransportError
	require.True(t, errors.As(err, &transportErr))
	var apiErr *response.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPI_MalformedBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"authenticated":`))
	})

	_, err := api.PostCredentials(context.Background(), LoginRequest{})

	assert.ErrorContains(t, err, "decoding JSON response")
}

func TestNewAPI_TrimsBaseURL(t *testing.T) {
	api := NewAPI("http://localhost:5000/", nil, logger.NewNopLogger(), false)

	assert.Equal(t, "http://localhost:5000/contador", api.ConstructURL(CounterEndpoint))
	assert.Same(t, http.DefaultClient, api.HTTP)
}
