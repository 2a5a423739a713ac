package utils

import (
	"regexp"
	"strings"
)

var (
	mobilePattern  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// NormalizePhone strips spaces, dashes, a leading +91/91 country code and a
// leading zero, returning the bare 10-digit number. The second return value
// reports whether the result is a valid mobile number (starts with 6-9).
// Normalizing an already-normalized number is a no-op.
func NormalizePhone(phone string) (string, bool) {
	p := strings.ReplaceAll(phone, " ", "")
	p = strings.ReplaceAll(p, "-", "")
	p = strings.TrimPrefix(p, "+")

	// Country code prefix: 91 followed by a full 10-digit number
	if len(p) == 12 && strings.HasPrefix(p, "91") {
		p = p[2:]
	}

	// Leading zero before the 10-digit number
	if len(p) == 11 && strings.HasPrefix(p, "0") {
		p = p[1:]
	}

	return p, mobilePattern.MatchString(p)
}

// IsValidPincode checks for a 6-digit postal code.
func IsValidPincode(pincode string) bool {
	return pincodePattern.MatchString(strings.TrimSpace(pincode))
}
