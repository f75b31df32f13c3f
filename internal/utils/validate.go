package utils // package utils provides input validation helpers

import (
	"net/mail"
	"strings"
)

// passwordSpecials is the set of special characters the password policy
// accepts.
const passwordSpecials = "@#$%^&+=!?"

// ValidateEmail reports whether the string is a syntactically valid
// address.  Display names ("Alice <a@b>") are rejected.
func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// ValidatePassword enforces the registration password policy: at least 8
// characters containing a lower-case letter, an upper-case letter, a digit
// and one of the accepted special characters.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, c):
			special = true
		}
	}
	return lower && upper && digit && special
}
