package logger

import (
	"log/slog"
	"strings"
)

// redactedValue replaces sensitive attribute values.
const redactedValue = "[REDACTED]"

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = []string{"passphrase", "password", "secret", "key"}

// redactSensitive replaces values of sensitive attributes.
func redactSensitive(a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range sensitiveKeys {
		if key == s || strings.HasSuffix(key, "_"+s) {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}
