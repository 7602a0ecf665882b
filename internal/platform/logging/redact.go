package logging

import (
	"log/slog"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// RedactedValue replaces every sensitive value in log output.
const RedactedValue = "[REDACTED]"

// SensitiveHeaders is the set of HTTP header names (lowercase) that carry
// credentials. Both the masq ReplaceAttr layer and RedactHeaders read it.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
	"set-cookie":          true,
}

var (
	// bearerPattern matches "Bearer <token>" values logged under any key.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// jwtPattern matches raw header.payload.signature strings. Segments need
	// at least 10 characters so version strings like 1.2.3 are left alone.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// apiKeyInlinePattern matches "api_key=<value>" or "apikey: <value>".
	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

// sensitiveFields are attribute keys redacted regardless of value.
var sensitiveFields = []string{"password", "secret", "token"}

// sensitivePrefixes catch variants such as "secret_key" or "api_key_v2".
var sensitivePrefixes = []string{"secret_", "api_key"}

// newRedactAttr returns a masq ReplaceAttr function for slog.HandlerOptions.
// It redacts by attribute key and, for values logged under innocuous keys,
// by pattern.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	headers := make([]string, 0, len(SensitiveHeaders))
	for name := range SensitiveHeaders {
		headers = append(headers, name)
	}
	slices.Sort(headers)

	opts := make([]masq.Option, 0, len(headers)+len(sensitiveFields)+len(sensitivePrefixes)+3)
	for _, name := range slices.Concat(headers, sensitiveFields) {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	opts = append(opts,
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)

	return masq.New(opts...)
}

// RedactHeaders converts request headers into slog attributes, replacing the
// values of SensitiveHeaders with RedactedValue. Multi-value headers are
// joined with a comma. Attributes are sorted by header name.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		if SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, RedactedValue))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(headers[key], ",")))
	}
	return attrs
}
