// Package redact strips sensitive material from strings before they are
// logged or embedded in error responses: connection strings, passwords,
// signed tokens, email addresses and raw SQL.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

var (
	// Connection strings with inline credentials, e.g. postgres://user:pw@host
	connStringRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., pwd: ... and similar key/value credential pairs
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{3,}`)

	// Server keys and bearer tokens in header-ish shapes
	serverKeyRegex = regexp.MustCompile(`(?i)(key|token|secret|authorization)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Three-part base64url JWTs
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// SQL statements leaking through driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()$]+(?:FROM|INTO|SET)(?:[\s\w,*()='"$]+)?`,
	)

	placeholders = []struct {
		re          *regexp.Regexp
		replacement string
	}{
		{connStringRegex, CredentialPlaceholder},
		{passwordRegex, CredentialPlaceholder},
		{jwtRegex, TokenPlaceholder},
		{serverKeyRegex, TokenPlaceholder},
		{emailRegex, EmailPlaceholder},
		{sqlRegex, SQLPlaceholder},
	}
)

// String returns s with every recognized sensitive fragment replaced by
// its placeholder.
func String(s string) string {
	for _, p := range placeholders {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}

// Error redacts err's message. A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
