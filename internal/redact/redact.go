// Package redact strips sensitive material from strings before they are
// logged. Error chains in this service can carry connection strings, JWTs
// and password-adjacent values; none of those belong in log output.
package redact

import "regexp"

const placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Database connection strings with embedded credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),

	// JWTs: three base64url segments starting with the
	// standard {"alg"... header prefix
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),

	// bcrypt hashes
	regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`),

	// password=..., secret=..., token=... style fragments
	regexp.MustCompile(`(?i)(password|passwd|secret|token|api[_-]?key)[=:\s]+[^'"&\s]{3,}`),
}

// String returns s with all recognized sensitive fragments replaced.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, placeholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
