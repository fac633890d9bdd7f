package logger

import (
	"net/url"
	"strings"

	"github.com/venturoid/driverproxy/connurl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const mask = "*******"

var credFields = map[string]bool{
	"password":     true,
	"pass":         true,
	"passwd":       true,
	"pwd":          true,
	"secret":       true,
	"token":        true,
	"sslpassword":  true,
	"access_token": true,
}

func isCredential(key string, extraKeys []string) bool {
	if credFields[strings.ToLower(key)] {
		return true
	}

	for _, extra := range extraKeys {
		if extra != "" && key == extra {
			return true
		}
	}
	return false
}

// RedactURL masks the userinfo password and every credential query parameter of a
// connection URL. extraKeys adds driver specific parameter names, such as a renamed
// password property. A URL that can not be parsed is masked completely.
func RedactURL(raw string, extraKeys ...string) string {
	head, query, hasQuery := strings.Cut(raw, "?")

	if at := strings.LastIndex(head, "@"); at >= 0 {
		if start := strings.Index(head, "//"); start >= 0 && start < at {
			if colon := strings.Index(head[start+2:at], ":"); colon >= 0 {
				head = head[:start+2+colon+1] + mask + head[at:]
			}
		}
	}

	if !hasQuery {
		return head
	}

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		key, _, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		name, err := url.QueryUnescape(key)
		if err != nil {
			return mask
		}

		if isCredential(name, extraKeys) {
			pairs[i] = key + "=" + mask
		}
	}

	return head + "?" + strings.Join(pairs, "&")
}

// Properties logs a property bag under key with credential values masked.
func Properties(key string, props *connurl.Properties, extraKeys ...string) zap.Field {
	return zap.Object(key, zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		props.Range(func(name, value string) bool {
			if isCredential(name, extraKeys) {
				value = mask
			}
			enc.AddString(name, value)
			return true
		})
		return nil
	}))
}
