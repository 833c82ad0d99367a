package validation

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters, spaces and the punctuation found in Spanish names: . ' -
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

	// Digits with optional leading +, spaces, dashes, dots and parentheses
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)
)

var (
	defaultValidate *validator.Validate
	defaultOnce     sync.Once
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// Default returns a shared validator with the custom rules registered.
func Default() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidate = New()
	})
	return defaultValidate
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// ValidName validates that a string contains only valid name characters
// Rejects digits and most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure and requires at least 7 digits
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if !phoneRegex.MatchString(val) {
		return false
	}
	digits := 0
	for _, r := range val {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes hold most emoji
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}
