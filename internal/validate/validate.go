// internal/validate/validate.go

// Package validate holds the format checks the ledger core treats as
// external collaborators: username syntax and credit-card number format.
package validate

import "regexp"

// usernameRegexp: 4-15 characters, alphanumerics, underscore or hyphen.
var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{4,15}$`)

// Username reports whether s is an acceptable username.
func Username(s string) bool {
	return usernameRegexp.MatchString(s)
}

// CardNumber reports whether s looks like a real card number: 13-19 digits
// passing the Luhn checksum.
func CardNumber(s string) bool {
	if len(s) < 13 || len(s) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
