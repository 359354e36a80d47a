package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	roomIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	// BCP-47-ish: lowercase primary subtag, optional region ("en", "pt-BR")
	languageRegex = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2})?$`)
)

// New returns a validator with the domain tags registered.
func New() *validator.Validate {
	v := validator.New()
	mustRegister(v, "roomid", ValidateRoomID)
	mustRegister(v, "language", ValidateLanguage)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateRoomID validates room ID format: 1-64 characters, alphanumeric with hyphens and underscores
func ValidateRoomID(fl validator.FieldLevel) bool {
	return roomIDRegex.MatchString(fl.Field().String())
}

func ValidateLanguage(fl validator.FieldLevel) bool {
	return languageRegex.MatchString(fl.Field().String())
}
