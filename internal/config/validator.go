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

// newValidator builds the struct validator used by ConfigLoader, with English
// translations and a custom "file" rule for paths such as the fitted weights
// file. Field names in messages come from the mapstructure tags so they match
// the YAML keys the user actually wrote.
func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	trans, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("file", isReadableFile); err != nil {
		return nil, nil, fmt.Errorf("validate.RegisterValidation(file) > %w", err)
	}
	registerMessage := func(ut ut.Translator) error {
		return ut.Add("file", "{0} must be an existing and readable file", true)
	}
	translateMessage := func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("file", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}
	if err := validate.RegisterTranslation("file", trans, registerMessage, translateMessage); err != nil {
		return nil, nil, fmt.Errorf("validate.RegisterTranslation(file) > %w", err)
	}

	return validate, trans, nil
}

// isReadableFile reports whether the field points at an existing regular file
// the owner can read.
func isReadableFile(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0400 != 0
}
