// response/success.go
/* Responsible for handling successful API responses. It reads the response body, logs the raw
response, and unmarshals it based on the content type. */
package response

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"go.uber.org/zap"
)

// contentHandler defines the signature for unmarshaling content from an io.Reader.
type contentHandler func(io.Reader, any, logger.Logger, string) error

// responseUnmarshallers maps MIME types to the corresponding contentHandler functions.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse reads the response body, logs it at debug level, and unmarshals it into out.
// A response without a Content-Type is treated as JSON.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return log.Error("Failed to read response body", zap.Error(err))
	}

	log.Debug("Raw HTTP Response", zap.String("Body", string(bodyBytes)))

	contentType := resp.Header.Get("Content-Type")
	mimeType, _ := parseHeader(contentType)
	if mimeType == "" {
		mimeType = "application/json"
	}

	handler, ok := responseUnmarshallers[mimeType]
	if !ok {
		log.Error("Unmarshal error", zap.String("content type", contentType))
		return fmt.Errorf("unexpected MIME type: %s", contentType)
	}

	return handler(bytes.NewReader(bodyBytes), out, log, contentType)
}

// handlerUnmarshalJSON unmarshals JSON content from an io.Reader into the provided output structure.
func handlerUnmarshalJSON(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		log.Error("JSON Unmarshal error", zap.Error(err))
		return fmt.Errorf("decoding JSON response: %w", err)
	}
	log.Debug("Successfully unmarshalled JSON response", zap.String("content type", mimeType))
	return nil
}

// handlerUnmarshalXML unmarshals XML content from an io.Reader into the provided output structure.
func handlerUnmarshalXML(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := xml.NewDecoder(reader).Decode(out); err != nil {
		log.Error("XML Unmarshal error", zap.Error(err))
		return fmt.Errorf("decoding XML response: %w", err)
	}
	log.Debug("Successfully unmarshalled XML response", zap.String("content type", mimeType))
	return nil
}
