// response/error.go
// This package provides utility functions and structures for handling and categorizing HTTP responses.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// APIError represents an error response returned by the API itself.
type APIError struct {
	StatusCode  int      `json:"status_code"` // HTTP status code
	Method      string   `json:"method"`      // HTTP method used for the request
	URL         string   `json:"url"`         // The URL of the HTTP request
	Message     string   `json:"message"`     // Summary of the error
	Details     []string `json:"details,omitempty"`
	RawResponse string   `json:"raw_response"` // Raw response body for debugging
}

// Error returns a string representation of the APIError, making it compatible with the error interface.
func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API Error: StatusCode=%d, Method=%s, URL=%s, Message=%s", e.StatusCode, e.Method, e.URL, message)
}

// ProxyError is returned when an intermediary rather than the API rejected the request
// (407 Proxy Authentication Required).
type ProxyError struct {
	StatusCode int
	URL        string
	Proxy      string
}

func (e *ProxyError) Error() string {
	return fmt.Sprintf("proxy error: StatusCode=%d, URL=%s, Proxy=%s", e.StatusCode, e.URL, e.Proxy)
}

// TransportError wraps any failure that happened while sending a request or reading its
// response. API errors decoded from a response are wrapped too, so callers classify with errors.As.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HandleAPIErrorResponse builds an APIError from a non-2xx response and logs it.
func HandleAPIErrorResponse(resp *http.Response, log logger.Logger) *APIError {
	apiError := &APIError{
		StatusCode: resp.StatusCode,
		Message:    "API Error Response",
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		apiError.URL = resp.Request.URL.String()
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiError.RawResponse = "Failed to read response body"
		return apiError
	}

	mimeType, _ := parseHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json", "application/problem+json":
		parseJSONResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLResponse(bodyBytes, apiError)
	case "text/plain":
		parseTextResponse(bodyBytes, apiError)
	default:
		apiError.RawResponse = string(bodyBytes)
		if len(bodyBytes) == 0 {
			apiError.Message = http.StatusText(resp.StatusCode)
		} else {
			apiError.Message = "Unknown content type error"
		}
	}

	log.Debug("API error response",
		zap.Int("status_code", apiError.StatusCode),
		zap.String("method", apiError.Method),
		zap.String("url", apiError.URL),
		zap.String("message", apiError.Message),
	)

	return apiError
}

// jsonErrorBody covers the shapes ASP.NET style APIs return: a plain message or a problem document.
type jsonErrorBody struct {
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors"`
}

// parseJSONResponse attempts to parse the JSON error response and update the APIError structure.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	var body jsonErrorBody
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return
	}

	switch {
	case body.Message != "":
		apiError.Message = body.Message
	case body.Title != "":
		apiError.Message = body.Title
	default:
		apiError.Message = "An unknown error occurred"
	}

	if body.Detail != "" {
		apiError.Details = append(apiError.Details, body.Detail)
	}
	for field, messages := range body.Errors {
		for _, m := range messages {
			apiError.Details = append(apiError.Details, field+": "+m)
		}
	}
}

// parseXMLResponse dynamically parses XML error responses and accumulates potential error messages.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "Failed to extract error details from XML response"
	}
}

// parseTextResponse updates the APIError structure based on a plain text error response.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	bodyText := string(bodyBytes)
	apiError.RawResponse = bodyText
	apiError.Message = strings.TrimSpace(bodyText)
}

// parseHTMLResponse extracts meaningful information from an HTML error response,
// concatenating all text within <p> tags and links found within them.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	apiError.RawResponse = string(bodyBytes)

	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				if c.Type == html.TextNode {
					pContent.WriteString(strings.TrimSpace(c.Data) + " ")
				} else if c.Type == html.ElementNode && c.Data == "a" {
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if finalContent := strings.TrimSpace(pContent.String()); finalContent != "" {
				messages = append(messages, finalContent)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "HTML Error: See 'RawResponse' field for details."
	}
}
