// Package validation holds the input rules applied to registration and login
// requests before any stored state is touched.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// Result is the outcome of a rule. Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Message: msg} }

// ValidateUsername rejects blank names. The length rule counts the name as
// typed, surrounding spaces included.
func ValidateUsername(username string) Result {
	if strings.TrimSpace(username) == "" {
		return fail("username must not be empty")
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return fail("username must be at least 3 characters long")
	}
	return ok()
}

func ValidatePassword(password string) Result {
	if password == "" {
		return fail("password must not be empty")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fail("password must be at least 6 characters long")
	}
	return ok()
}

func ValidateEmail(email string) Result {
	if strings.TrimSpace(email) == "" {
		return fail("email must not be empty")
	}
	if !emailPattern.MatchString(email) {
		return fail("email format is invalid")
	}
	return ok()
}

// ValidateRegistration checks username, password and email in that order and
// returns the first failure.
func ValidateRegistration(username, password, email string) Result {
	if r := ValidateUsername(username); !r.Valid {
		return r
	}
	if r := ValidatePassword(password); !r.Valid {
		return r
	}
	return ValidateEmail(email)
}

// ValidateLogin checks username then password.
func ValidateLogin(username, password string) Result {
	if r := ValidateUsername(username); !r.Valid {
		return r
	}
	return ValidatePassword(password)
}
