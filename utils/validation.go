// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN checks if a GST registration number has the standard 15
// character shape: state code, PAN, entity digit, 'Z', check character.
func ValidateGSTIN(gstin string) bool {
	cleaned := strings.ToUpper(strings.ReplaceAll(gstin, " ", ""))
	return gstinRegex.MatchString(cleaned)
}

// NormalizeGSTIN uppercases and strips spaces so lookups are consistent.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.ReplaceAll(gstin, " ", ""))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE metacharacters so user input is matched
// literally when embedded in a pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
