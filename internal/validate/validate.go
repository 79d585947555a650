// Package validate wraps the validator library for call sites outside of
// request binding, so repositories can enforce the same field rules the HTTP
// layer does.
package validate

import (
	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// ISBN13 reports whether s is a valid ISBN-13 including its check digit.
func ISBN13(s string) bool {
	return v.Var(s, "isbn13") == nil
}

// ISBN10 reports whether s is a valid ISBN-10 including its check digit.
func ISBN10(s string) bool {
	return v.Var(s, "isbn10") == nil
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return v.Var(s, "email") == nil
}
