// Package validate holds the registration policy checks for usernames,
// emails, and passwords. All checks are pure; they never touch the store.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ErrUsernameForbiddenChars = errors.New("username may only contain upper- and lowercase Latin letters, digits, periods and underscores")
	ErrUsernameLeadingPeriod  = errors.New("username cannot start with a period")
	ErrUsernameLeadingDigit   = errors.New("username cannot start with a digit")

	ErrInvalidEmail = errors.New("not a valid email address")

	ErrPasswordForbiddenChars = errors.New("password contains invalid characters")
	ErrInsecurePassword       = errors.New("insecure password: must be 8-72 characters with upper- and lowercase letters, at least one digit and one special symbol like !@#$%^&*()_+:;<>/?")
)

const passwordSymbols = "!@#$%^&*()_+:;<>/?"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// Username checks the broad character class first, then the leading-period
// rule, then the leading-digit rule. The first violated rule wins.
func Username(s string) error {
	if !isASCII(s) || !usernamePattern.MatchString(s) {
		return ErrUsernameForbiddenChars
	}
	if s[0] == '.' {
		return ErrUsernameLeadingPeriod
	}
	if s[0] >= '0' && s[0] <= '9' {
		return ErrUsernameLeadingDigit
	}
	return nil
}

// Email accepts syntactically valid addresses only. The empty string is
// checked explicitly because ozzo rules skip blank values.
func Email(s string) error {
	if s == "" {
		return ErrInvalidEmail
	}
	if err := is.EmailFormat.Validate(s); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Password requires ASCII, length within [8,72], and at least one digit, one
// lowercase letter, one uppercase letter, and one symbol from the fixed set.
// Which of the four classes is missing is deliberately not reported.
func Password(s string) error {
	if !isASCII(s) {
		return ErrPasswordForbiddenChars
	}
	if len(s) < 8 || len(s) > 72 {
		return ErrInsecurePassword
	}
	var digit, lower, upper, symbol bool
	for _, c := range s {
		switch {
		case unicode.IsDigit(c):
			digit = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		}
		if strings.ContainsRune(passwordSymbols, c) {
			symbol = true
		}
	}
	if !digit || !lower || !upper || !symbol {
		return ErrInsecurePassword
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
