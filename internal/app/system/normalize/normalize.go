// internal/app/system/normalize/normalize.go

// Package normalize provides small canonicalization helpers for values
// that are compared or used as lookup keys. Emails in particular flow
// in from three directions (OAuth, team rosters, the payment webhook)
// and must match case-insensitively.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a search query, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
