// Package phone normalizes and validates Portuguese mobile numbers.
package phone

import (
	"regexp"
	"strings"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
)

const (
	// CountryCode is prepended to validated local numbers.
	CountryCode = "+351"
	// AdminPhone receives every admin notification. It is never validated.
	AdminPhone = "+351912137525"
)

var (
	nonDigits   = regexp.MustCompile(`\D`)
	localMobile = regexp.MustCompile(`^9\d{8}$`)
)

// Digits strips every non-digit character from raw.
func Digits(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// Validate reports whether raw is a 9 digit mobile number starting with 9.
func Validate(raw string) bool {
	return localMobile.MatchString(Digits(raw))
}

// Format returns raw in international form, e.g. "912345678" -> "+351912345678".
func Format(raw string) (string, error) {
	digits := Digits(raw)
	if !localMobile.MatchString(digits) {
		return "", apperr.ErrInvalidPhoneNumber
	}

	return CountryCode + digits, nil
}

// WhatsAppNumber returns the digits of raw with the country code added when absent.
func WhatsAppNumber(raw string) string {
	digits := Digits(raw)
	code := strings.TrimPrefix(CountryCode, "+")
	if strings.HasPrefix(digits, code) {
		return digits
	}

	return code + digits
}
