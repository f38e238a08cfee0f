package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail lowercases, trims and strips markup from an email address.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = stripHTML(email)
	email = removeControlChars(email)
	return email
}

// SanitizeTrackingNumber uppercases and strips everything that cannot occur
// in a carrier tracking number.
func SanitizeTrackingNumber(number string) string {
	number = strings.ToUpper(strings.TrimSpace(number))

	var result strings.Builder
	for _, r := range number {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeVIN normalizes a vehicle identification number. VINs never contain
// I, O or Q; those are left for the validator to reject.
func SanitizeVIN(vin string) string {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	return removeControlChars(vin)
}

func stripHTML(input string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
