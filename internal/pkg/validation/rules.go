package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Entity code pattern: uppercase alphanumeric with optional hyphen groups,
	// e.g. "CS", "CS101", "CS-BS"
	CodePattern = `^[A-Z0-9]+(-[A-Z0-9]+)*$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Code  *regexp.Regexp
	Email *regexp.Regexp
}{
	Code:  regexp.MustCompile(CodePattern),
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidCode reports whether code is a well-formed entity code once
// upper-cased and trimmed.
func IsValidCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	return CompiledPatterns.Code.MatchString(code)
}

// NormalizeCode trims and upper-cases an entity code. Codes are stored uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidEmail reports whether the email matches the accepted format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// AssignmentRoles are the accepted role labels for a lecturer-program assignment.
var AssignmentRoles = map[string]bool{
	"lecturer":    true,
	"coordinator": true,
	"advisor":     true,
}

// IsValidAssignmentRole reports whether role is an accepted assignment role label.
func IsValidAssignmentRole(role string) bool {
	return AssignmentRoles[strings.ToLower(strings.TrimSpace(role))]
}
