package reservation

import (
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/smartcheckin/smartcheckin/internal/shared/id"
)

const (
	// SecretCodeAlphabet omits 0/O and 1/I/L so codes survive being read aloud.
	SecretCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

	secretCodeGroups      = 3
	secretCodeGroupLength = 3
)

// Accepted input is structural only: codes issued before the alphabet was
// narrowed may still contain 0, 1, I, L or O.
var secretCodePattern = regexp.MustCompile(`^[A-Z0-9]{3}-[A-Z0-9]{3}-[A-Z0-9]{3}$`)

// SecretCode is the shared secret handed to the guest out-of-band.
type SecretCode struct {
	value string
}

// GenerateSecretCode draws a fresh XXX-XXX-XXX code from SecretCodeAlphabet.
func GenerateSecretCode() (SecretCode, error) {
	raw, err := id.RandomString(SecretCodeAlphabet, secretCodeGroups*secretCodeGroupLength)
	if err != nil {
		return SecretCode{}, fmt.Errorf("failed to generate secret code: %w", err)
	}

	groups := make([]string, 0, secretCodeGroups)
	for i := 0; i < len(raw); i += secretCodeGroupLength {
		groups = append(groups, raw[i:i+secretCodeGroupLength])
	}
	return SecretCode{value: strings.Join(groups, "-")}, nil
}

// ParseSecretCode normalises guest input and checks its shape.
func ParseSecretCode(raw string) (SecretCode, error) {
	normalized := NormalizeSecretCode(raw)
	if !secretCodePattern.MatchString(normalized) {
		return SecretCode{}, ErrMalformedSecretCode
	}
	return SecretCode{value: normalized}, nil
}

// ReconstructSecretCode wraps a stored value without validation.
func ReconstructSecretCode(value string) SecretCode {
	return SecretCode{value: value}
}

// NormalizeSecretCode folds full-width characters to ASCII, drops every
// whitespace rune and upper-cases the rest. Dashes are kept.
func NormalizeSecretCode(raw string) string {
	folded := width.Fold.String(raw)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
	return strings.ToUpper(stripped)
}

func (s SecretCode) String() string {
	return s.value
}

func (s SecretCode) IsZero() bool {
	return s.value == ""
}

// Matches compares in constant time.
func (s SecretCode) Matches(other SecretCode) bool {
	if s.IsZero() || other.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.value), []byte(other.value)) == 1
}
