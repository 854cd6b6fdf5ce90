// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Exchange tickers may carry '&' and '-' (M&M, BAJAJ-AUTO) and an optional
// .NS/.BO suffix. Surrounding whitespace is trimmed later.
var (
	tickerRegex     = regexp.MustCompile(`^\s*[A-Za-z0-9][A-Za-z0-9&_.\-]{0,23}\s*$`)
	schemeCodeRegex = regexp.MustCompile(`^\s*[0-9]{1,10}\s*$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("scheme_code", validateSchemeCode)
	}
}

// ValidTicker reports whether s looks like an exchange ticker.
func ValidTicker(s string) bool {
	return tickerRegex.MatchString(s)
}

// ValidSchemeCode reports whether s looks like a mutual fund scheme code.
func ValidSchemeCode(s string) bool {
	return schemeCodeRegex.MatchString(s)
}

func validateTicker(fl validator.FieldLevel) bool {
	return ValidTicker(fl.Field().String())
}

func validateSchemeCode(fl validator.FieldLevel) bool {
	return ValidSchemeCode(fl.Field().String())
}
