package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/aulaedu/aula/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	// secret policy
	secretMinLen     = 8
	secretMinLenTag  = "secretminlen"
	secretMinLenText = fmt.Sprintf("secret must contain at least %d characters", secretMinLen)

	secretNoSpaceTag  = "secretnospace"
	secretNoSpaceText = "secret must not contain whitespace"

	secretMaxSim      = .7
	secretAttrSimTag  = "secrettoosim"
	secretAttrSimText = "secret cannot be similar to user attributes"

	attrSplitRegex = regexp.MustCompile(`\W+`)
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)

	_ = core.Validate.RegisterValidation(secretMinLenTag, secretMinLenValidation)
	core.RegisterCustomTranslation(secretMinLenTag, secretMinLenText)

	_ = core.Validate.RegisterValidation(secretNoSpaceTag, secretNoSpaceValidation)
	core.RegisterCustomTranslation(secretNoSpaceTag, secretNoSpaceText)

	_ = core.Validate.RegisterValidation(secretAttrSimTag, secretAttrSimValidation)
	core.RegisterCustomTranslation(secretAttrSimTag, secretAttrSimText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}

func secretMinLenValidation(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) >= secretMinLen
}

func secretNoSpaceValidation(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// secretAttrSimValidation checks that the secret is not too similar to the
// user's name or email.
func secretAttrSimValidation(fl validator.FieldLevel) bool {
	nu, ok := fl.Parent().Interface().(NewUser)
	if !ok {
		if nuPtr, ok := fl.Parent().Interface().(*NewUser); ok {
			nu = *nuPtr
		} else {
			return true
		}
	}

	secret := strings.ToLower(fl.Field().String())
	getRatio := func(attr string) float64 {
		return difflib.NewMatcher(strings.Split(secret, ""), strings.Split(attr, "")).QuickRatio()
	}

	attrs := []string{nu.Name, nu.Email}
	for _, attr := range attrs {
		attr = strings.ToLower(core.CleanString(attr))
		if attr == "" {
			continue
		}
		parts := append(attrSplitRegex.Split(attr, -1), attr)
		for _, part := range parts {
			if part != "" && getRatio(part) >= secretMaxSim {
				return false
			}
		}
	}
	return true
}
