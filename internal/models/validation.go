package models

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	cuitPattern  = regexp.MustCompile(`^\d{2}-\d{8}-\d{1}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{8,20}$`)
)

const minFiscalYear = 2000

// NewValidator returns a validator with the domain tags registered:
// cuit, phone, fiscal_year and password.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("cuit", func(fl validator.FieldLevel) bool {
		return cuitPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fiscal_year", func(fl validator.FieldLevel) bool {
		y := fl.Field().Int()
		return y >= minFiscalYear && y <= int64(time.Now().Year())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})
	return v
}

// ValidPassword enforces the password policy: 8 to 72 bytes (the bcrypt
// limit) with at least one letter and one digit.
func ValidPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 72 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
