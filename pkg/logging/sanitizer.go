// Package logging scrubs credentials out of connection strings and driver
// errors before they reach a log line. Driver errors routinely echo the
// DSN they failed on, so every URL or error the registry logs goes
// through here first.
package logging

import "regexp"

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Matches password=xxx, pwd=xxx, pass=xxx (until the next delimiter),
	// the keyword form used by libpq DSNs and sqlserver query strings.
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches user:pass@host credentials in URL-form connection strings.
	urlCredsPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)

	// Matches the user:pass@tcp(host:port) form of go-sql-driver DSNs.
	mysqlCredsPattern = regexp.MustCompile(`^[^:/@\s]+:[^@\s]+@`)
)

// SanitizeConnString removes credentials from a connection string in any
// of the forms the registry builds. Use it before logging any URL.
func SanitizeConnString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	sanitized = urlCredsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
	sanitized = mysqlCredsPattern.ReplaceAllString(sanitized, RedactedText+"@")
	return sanitized
}

// SanitizeError renders an error with any embedded connection-string
// credentials removed. Use it before logging errors from pool builds,
// pings or checkouts.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeConnString(err.Error())
}
