// apiintegrations/contagem/contagem_api_request.go
package contagem

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deploymenttheory/go-api-contagem-client/headers"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/deploymenttheory/go-api-contagem-client/response"
	"github.com/deploymenttheory/go-api-contagem-client/status"
	"go.uber.org/zap"
)

// API binds the counting service endpoints to explicit Go methods.
type API struct {
	BaseURL           string
	HTTP              *http.Client
	Logger            logger.Logger
	HideSensitiveData bool
}

// NewAPI returns an API rooted at baseURL. A nil httpClient falls back to http.DefaultClient.
func NewAPI(baseURL string, httpClient *http.Client, log logger.Logger, hideSensitiveData bool) *API {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &API{
		BaseURL:           strings.TrimRight(baseURL, "/"),
		HTTP:              httpClient,
		Logger:            log,
		HideSensitiveData: hideSensitiveData,
	}
}

// ConstructURL joins the base URL and an endpoint path.
func (a *API) ConstructURL(endpoint string) string {
	return a.BaseURL + endpoint
}

// doRequest sends one JSON request and decodes a 2xx body into out.
// Every failure is returned as a *response.TransportError; API rejections wrap a
// *response.APIError and 407s from intermediaries wrap a *response.ProxyError.
func (a *API) doRequest(ctx context.Context, method, endpoint, authorization string, body, out any) error {
	url := a.ConstructURL(endpoint)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &response.TransportError{Method: method, URL: url, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &response.TransportError{Method: method, URL: url, Err: err}
	}
	headers.NewHeaderHandler(req, a.Logger, a.HideSensitiveData).SetRequestHeaders(authorization)

	startTime := time.Now()
	resp, err := a.HTTP.Do(req)
	if err != nil {
		a.Logger.Debug("Failed to send request", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return &response.TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	a.Logger.LogRequestEnd("request_end", method, url, resp.StatusCode, time.Since(startTime))

	if status.IsProxyAuthRequired(resp.StatusCode) {
		return &response.TransportError{Method: method, URL: url, Err: &response.ProxyError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Proxy:      resp.Header.Get("Proxy-Authenticate"),
		}}
	}

	if !status.IsSuccess(resp.StatusCode) {
		return &response.TransportError{Method: method, URL: url, Err: response.HandleAPIErrorResponse(resp, a.Logger)}
	}

	if err := response.HandleAPISuccessResponse(resp, out, a.Logger); err != nil {
		return &response.TransportError{Method: method, URL: url, Err: err}
	}
	return nil
}
