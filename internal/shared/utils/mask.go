package utils

import "strings"

// MaskSecretCode keeps the first group of a secret code for safe logging.
// Example: "A1B-2C3-D4E" -> "A1B-***-***"
func MaskSecretCode(code string) string {
	first, _, found := strings.Cut(code, "-")
	if !found || first == "" {
		return "***"
	}
	return first + "-***-***"
}

// TruncateForLog truncates a string to maxLen characters for safe logging.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
