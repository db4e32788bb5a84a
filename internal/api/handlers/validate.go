// Package handlers contains the handlers for the API
package handlers

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail reports whether the string looks like an email address
func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validName reports whether the trimmed string is 2-255 characters
func validName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 255
}

// validPassword reports whether the password is at least 6 characters
func validPassword(password string) bool {
	return len(password) >= 6
}

// validText reports whether the trimmed string length is within bounds
func validText(text string, min, max int) bool {
	n := len(strings.TrimSpace(text))
	return n >= min && n <= max
}

// requiredFields returns a field->message map for every blank value
func requiredFields(values map[string]string) map[string]string {
	errors := map[string]string{}
	for field, value := range values {
		if strings.TrimSpace(value) == "" {
			errors[field] = capitalize(field) + " is required"
		}
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
