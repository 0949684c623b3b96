package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// customRules are validation tags beyond the validator's built-ins, with their English messages.
var customRules = []struct {
	tag     string
	message string
	fn      validator.Func
}{
	{
		tag:     "template",
		message: "{0} must be an existing template file readable by its owner",
		fn:      isReadableTemplate,
	},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()
	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}
	validate.RegisterTagNameFunc(mapstructureName)

	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, nil, fmt.Errorf("register %s rule > %w", rule.tag, err)
		}
		if err := validate.RegisterTranslation(rule.tag, trans, addMessage(rule.tag, rule.message), translateField(rule.tag)); err != nil {
			return nil, nil, fmt.Errorf("register %s message > %w", rule.tag, err)
		}
	}
	return validate, trans, nil
}

// mapstructureName reports fields by their config key, so errors read "templates.deck_template".
func mapstructureName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func addMessage(tag, message string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, message, true)
	}
}

func translateField(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		message, _ := trans.T(tag, strings.TrimPrefix(fe.Namespace(), "Config."))
		return message
	}
}

// isReadableTemplate accepts a regular file whose owner can read it.
func isReadableTemplate(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o400 != 0
}
