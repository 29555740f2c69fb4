package shared

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_\-]+$`)

// NormalizeCode trims and uppercases a business code and validates it.
// Error codes take the form INVALID_<ENTITY>_CODE.
func NormalizeCode(entity, code string, maxLen int) (string, error) {
	errCode := "INVALID_" + strings.ToUpper(entity) + "_CODE"
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", NewDomainError(errCode, fmt.Sprintf("%s code cannot be empty", entity))
	}
	if len(code) > maxLen {
		return "", NewDomainError(errCode, fmt.Sprintf("%s code cannot exceed %d characters", entity, maxLen))
	}
	if !codePattern.MatchString(code) {
		return "", NewDomainError(errCode, fmt.Sprintf("%s code can only contain letters, numbers, underscores, and hyphens", entity))
	}
	return code, nil
}

// RequireName trims a display name and checks it is non-empty and within maxLen runes.
func RequireName(entity, name string, maxLen int) (string, error) {
	errCode := "INVALID_" + strings.ToUpper(entity) + "_NAME"
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewDomainError(errCode, fmt.Sprintf("%s name cannot be empty", entity))
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "", NewDomainError(errCode, fmt.Sprintf("%s name cannot exceed %d characters", entity, maxLen))
	}
	return name, nil
}

// NormalizeEmail lowercases and validates an optional email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if len(email) > 200 {
		return "", NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "", NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}
