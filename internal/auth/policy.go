package auth

import (
	"regexp"
	"unicode/utf8"
)

const minPasswordLength = 8

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordPolicy checks password strength for new accounts.
type PasswordPolicy struct{}

// IsAcceptable reports whether password is at least 8 characters (runes, not
// bytes) and has an uppercase letter, a lowercase letter, a digit and a symbol.
func (PasswordPolicy) IsAcceptable(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	return hasUpper.MatchString(password) &&
		hasLower.MatchString(password) &&
		hasDigit.MatchString(password) &&
		hasSpecial.MatchString(password)
}

// DescribeRequirements is the message shown when IsAcceptable fails.
func (PasswordPolicy) DescribeRequirements() string {
	return "Password must be at least 8 characters long and contain at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character."
}
