package core

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	recordKeyTag   = "recordkey"
	recordKeyText  = "{0} must not be blank nor start or end with whitespace"
	recordKeyRegex = regexp.MustCompile(`^\S(.*\S)?$`)

	finiteTag  = "finite"
	finiteText = "{0} must be a finite number"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// NewValidator returns a validator with the english translations and the custom validators registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	return validate, translator
}

func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(recordKeyTag, recordKeyValidation)
	RegisterCustomTranslation(validate, translator, recordKeyTag, recordKeyText)

	_ = validate.RegisterValidation(finiteTag, finiteValidation)
	RegisterCustomTranslation(validate, translator, finiteTag, finiteText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors flattens validation errors into {field: message}.
func TranslateErrors(err validator.ValidationErrors, translator ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(err))
	for _, vErr := range err {
		fldErrs[vErr.Field()] = vErr.Translate(translator)
	}
	return fldErrs
}

// Custom Global Validators

// recordKeyValidation only allows keys that are not blank and carry no surrounding whitespace.
func recordKeyValidation(fl validator.FieldLevel) bool {
	return recordKeyRegex.MatchString(fl.Field().String())
}

// finiteValidation rejects NaN & ±Inf.
func finiteValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return false
}
