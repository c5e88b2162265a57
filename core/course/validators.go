package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/aulaedu/aula/core"
)

var (
	contentKindTag  = "contentkind"
	contentKindText = "invalid content kind"
)

func init() {
	_ = core.Validate.RegisterValidation(contentKindTag, contentKindValidation)
	core.RegisterCustomTranslation(contentKindTag, contentKindText)
}

func contentKindValidation(fl validator.FieldLevel) bool {
	return ContentKind(fl.Field().String()).Valid()
}
