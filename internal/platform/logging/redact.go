package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// jwtPattern matches three base64 segments separated by dots.
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// authHeaderPattern matches Authorization header values.
	authHeaderPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every logger.
// Request logging records headers and query strings, so credentials that
// arrive there must never reach the output.
//
// To add more, combine with additional options:
//
//	replace := logging.NewReplaceAttr(masq.WithFieldName("MySecretField"))
func DefaultRedactOptions() []masq.Option {
	fields := []string{
		"password", "secret", "token", "apiKey", "apikey", "api_key",
		"accessToken", "access_token", "refreshToken", "refresh_token",
		"credential", "credentials", "authorization", "auth", "bearer",
		"cookie", "session", "privateKey", "private_key", "secretKey", "secret_key",
	}

	opts := make([]masq.Option, 0, len(fields)+4)
	for _, f := range fields {
		opts = append(opts, masq.WithFieldName(f))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(authHeaderPattern),
	)
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
