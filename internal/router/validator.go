package router

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const passwordSpecials = "@$!%*?&;:"

var usernameCharsRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the registration rules:
// username charset, password strength and minimum age.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("username", validUsername)
	_ = v.RegisterValidation("password", strongPassword)
	_ = v.RegisterValidation("minage", minAge)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validUsername requires at least one letter and allows only letters, digits,
// hyphens and underscores.
func validUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !usernameCharsRe.MatchString(value) {
		return false
	}
	for _, r := range value {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// strongPassword requires a lowercase letter, an uppercase letter, a digit
// and a special character.
func strongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var lower, upper, digit, special bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// minAge checks a date-of-birth field against the minimum age in years given
// as the tag parameter.
func minAge(fl validator.FieldLevel) bool {
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	dob, ok := fl.Field().Interface().(time.Time)
	if !ok || dob.IsZero() {
		return false
	}
	return !dob.After(time.Now().AddDate(-years, 0, 0))
}
