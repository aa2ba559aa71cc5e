// format.go
package logger

import (
	"encoding/json"
	"fmt"
)

// FormatJSONPayload renders v as indented JSON for the informational log sink.
// Values that cannot be marshalled fall back to their %+v form.
func FormatJSONPayload(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
