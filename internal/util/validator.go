package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
)

// ValidateUsername checks the username format: 3-20 characters, letters,
// digits and underscores only.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(username) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidatePassword checks length bounds only; used on the login path where
// content rules must not leak information about stored passwords.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be no more than 128 characters long")
	}
	return nil
}

// ValidatePasswordStrength enforces the registration policy: 8-32 characters
// with upper case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 32 {
		return fmt.Errorf("password must be 8-32 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain upper case, lower case letters and digits")
	}
	return nil
}

// ValidateName checks a display name: 2-50 letters and spaces.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("name can only contain letters and spaces (2-50 characters)")
	}
	return nil
}

// SanitizeInput strips characters that could smuggle markup or control
// sequences into templates and logs.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(
		"<", "", ">", "", "\"", "", "'", "",
		";", "", "\\", "", "\x00", "", "\r", "", "\n", " ",
	)
	return replacer.Replace(s)
}
