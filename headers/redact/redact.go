package redact

// sensitiveKeys lists the header and field names whose values never reach the logs when redaction is on.
var sensitiveKeys = map[string]bool{
	"AccessToken":   true,
	"Authorization": true,
	"Password":      true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[key] {
		return "REDACTED"
	}
	return value
}
