package registry

import (
	"fmt"
	"strings"
)

// IsContentful reports whether s has any non-whitespace character.
func IsContentful(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateDomain checks a bundle domain. With allowHierarchy the domain may
// be a '/'-separated path; every chunk must be non-blank and space-free.
func ValidateDomain(domain string, allowHierarchy bool) error {
	if !IsContentful(domain) {
		return &ValidationError{Reason: "Invalid domain. It should be a contentful string."}
	}

	if !allowHierarchy && strings.Contains(domain, "/") {
		return &ValidationError{Reason: fmt.Sprintf("Invalid domain '%s'. It cannot have multiple chunks here.", domain)}
	}

	for _, chunk := range strings.Split(domain, "/") {
		if strings.Contains(chunk, " ") {
			return &ValidationError{Reason: fmt.Sprintf("Invalid domain '%s'. It cannot have empty spaces in '%s'.", domain, chunk)}
		}
		if !IsContentful(chunk) {
			return &ValidationError{Reason: fmt.Sprintf("Invalid domain '%s'. It cannot have empty chunks.", domain)}
		}
	}
	return nil
}

// ValidateNameOrIdentifier checks an injectable name or custom identifier.
func ValidateNameOrIdentifier(nameOrIdentifier string) error {
	if !IsContentful(nameOrIdentifier) {
		return &ValidationError{Reason: "Invalid name or identifier. It should be a contentful string."}
	}

	if strings.Contains(nameOrIdentifier, " ") {
		return &ValidationError{Reason: fmt.Sprintf("Invalid name or identifier '%s'. It cannot have empty spaces.", nameOrIdentifier)}
	}

	if strings.Contains(nameOrIdentifier, "/") {
		return &ValidationError{Reason: fmt.Sprintf("Invalid name or identifier '%s'. It cannot have chunks.", nameOrIdentifier)}
	}
	return nil
}
