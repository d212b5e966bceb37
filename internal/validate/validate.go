// Package validate holds the field predicates shared by the signup forms and
// the server-side user/content methods. All predicates are total: any string
// in, boolean out.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError reports a field that failed its predicate, naming the field and
// the offending value (or a reason when the value is secret).
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s", e.Field, e.Value)
}

var (
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	nameRe  = regexp.MustCompile(`^\w(\w|\s|['.])*$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9()\-. ]{7,20}[0-9]{3}$`)
	ssnRe   = regexp.MustCompile(`^[0-9]{3}-?[0-9]{2}-?[0-9]{4}$`)
	slugRe  = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)
)

// passwordSymbols is the fixed punctuation set a password must draw at least
// one character from.
const passwordSymbols = `!@#$%^&*()-_=+{}[];:'",.<>/\|?`

// Email reports whether address looks like local@domain.tld. Deliberately
// permissive; full RFC compliance is not the goal.
func Email(address string) bool {
	return emailRe.MatchString(address)
}

// Name reports whether value is an acceptable human name: leading word
// character, then word characters, whitespace, apostrophes or periods.
func Name(value string) bool {
	return nameRe.MatchString(value)
}

// PhoneNum reports whether value is a plausible phone number: optional
// leading +, 7-20 characters of digits/()-. and spaces, ending in three
// digits.
func PhoneNum(value string) bool {
	return phoneRe.MatchString(value)
}

// SSN reports whether value matches DDD-DD-DDDD, hyphens optional.
func SSN(value string) bool {
	return ssnRe.MatchString(value)
}

// Password reports whether value is strong enough: at least 8 characters and
// at least one lowercase letter, one uppercase letter, one digit and one
// symbol from the fixed set. RE2 has no lookahead, so the four class checks
// run as independent scans over the same acceptance set.
func Password(value string) bool {
	if len(value) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Slug reports whether value is alphanumeric segments joined by single
// hyphens, with no leading, trailing or doubled hyphen.
func Slug(value string) bool {
	return slugRe.MatchString(value)
}

// Code follows the same rule as Slug; the two exist as separate names because
// template codes and page slugs are validated at different call sites.
func Code(value string) bool {
	return slugRe.MatchString(value)
}
