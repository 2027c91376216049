// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. The authentication flow
// handles bearer tokens, email addresses and passwords, and none of them may reach
// a log line in clear text.
package redact

import (
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; connection strings must go before the
// password rule, which would otherwise swallow the host part of a DSN.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd|senha|secret)(\s*[=:]\s*|\s+)['"]?[^'"&\s,]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Email masks the local part of an address, keeping its first character and
// the domain: "alice@example.com" becomes "a***@example.com".
// Values that do not look like an address are fully redacted.
func Email(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return RedactionPlaceholder
	}
	return email[:1] + "***" + email[at:]
}

// Token returns a short, non-reversible prefix of a bearer token so that log
// lines about the same token can be correlated.
func Token(token string) string {
	const keep = 8
	if len(token) <= keep*2 {
		return RedactionPlaceholder
	}
	return token[:keep] + "..." + RedactionPlaceholder
}
