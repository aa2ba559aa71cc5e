package proxy

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeProxy_NoProxy(t *testing.T) {
	client := &http.Client{}

	require.NoError(t, InitializeProxy(client, "", "user", "pass", logger.NewNopLogger()))
	assert.Nil(t, client.Transport)
}

func TestInitializeProxy_InvalidURL(t *testing.T) {
	client := &http.Client{}

	assert.Error(t, InitializeProxy(client, "://bad", "", "", logger.NewNopLogger()))
	assert.Error(t, InitializeProxy(client, "proxy.local", "", "", logger.NewNopLogger()))
	assert.Nil(t, client.Transport)
}

func TestInitializeProxy_RoutesThroughProxy(t *testing.T) {
	var seenAuth, seenHost string
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Proxy-Authorization")
		seenHost = r.URL.Host
		w.WriteHeader(http.StatusNoContent)
	}))
	defer proxyServer.Close()

	client := &http.Client{}
	require.NoError(t, InitializeProxy(client, proxyServer.URL, "proxyuser", "proxypass", logger.NewNopLogger()))

	resp, err := client.Get("http://contagem.internal/contador")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "contagem.internal", seenHost)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("proxyuser:proxypass")), seenAuth)
}
