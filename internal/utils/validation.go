package utils

import (
	"regexp"
	"strings"
)

// emailPattern requires at least one character before the @, a domain label
// and a TLD of two or more characters, with no spaces anywhere.
var emailPattern = regexp.MustCompile(`^[^@ ]+@[^@ ]+\.[^@ .]{2,}$`)

// ValidateName returns an empty string when the name is acceptable, or a
// user-facing message otherwise.
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	return ""
}

func ValidateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "E-mail is required."
	}
	if !emailPattern.MatchString(email) {
		return "Enter a valid e-mail address."
	}
	return ""
}

// ValidatePhone validates the digits-only form: Brazilian landlines have 10
// digits, mobile numbers 11.
func ValidatePhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Phone is required."
	}

	digits := UnmaskPhone(phone)
	if len(digits) < 10 || len(digits) > 11 {
		return "Invalid phone (minimum 10, maximum 11 digits)."
	}
	return ""
}

func ValidateCompany(company string) string {
	if strings.TrimSpace(company) == "" {
		return "Company is required."
	}
	return ""
}

func ValidatePassword(password string) string {
	if password == "" {
		return "Password is required."
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	return ""
}
