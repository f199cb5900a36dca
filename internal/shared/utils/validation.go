package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength     = 128
	MaxNameLength   = 256
	MaxIconLength   = 512 * 1024
	MaxScriptLength = 64 * 1024
)

// PackageIDPattern allows alphanumeric, dots, hyphens, underscores (e.g. "com.example.calc")
var PackageIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Null bytes never belong in display or key fields
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidatePackageID validates an app package id
func ValidatePackageID(id string) error {
	if err := ValidateString(id, "package_id", 1, MaxIDLength, true); err != nil {
		return err
	}

	if !PackageIDPattern.MatchString(id) {
		return fmt.Errorf("package_id contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)")
	}

	return nil
}

// ValidateName validates a display name
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, true)
}

// ValidateIcon validates an icon reference or inline data URI
func ValidateIcon(icon string) error {
	return ValidateString(icon, "icon", 0, MaxIconLength, false)
}

// ValidateScript validates an inline hook script
func ValidateScript(script string) error {
	return ValidateString(script, "on_close", 0, MaxScriptLength, false)
}
