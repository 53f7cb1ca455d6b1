// Package validation checks report inputs and renders failures as Ukrainian messages.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/uk"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/academic-rating/internal/scoring"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

const (
	TagIntList       = "int_list"
	TagFloatList     = "float_list"
	TagWeightedPairs = "weighted_pairs"
	TagPeriodTitle   = "period_title"
)

var messages = map[string]string{
	TagIntList:       "Невірний формат даних. Введіть цілі числа через крапку з комою.",
	TagFloatList:     "Невірний формат даних. Введіть цілі або дробні числа через крапку з комою.",
	TagWeightedPairs: "Невірний формат даних. Цілі або дробні пари чисел в форматі V(K) та розділені крапкою із комою в разі декількох пар.",
	TagPeriodTitle:   "Назва періоду має бути у форматі РРРР/РРРР з послідовними роками.",
	"required":       "Поле {0} є обов'язковим.",
	"gte":            "Значення має бути не менше {0}.",
	"lte":            "Значення має бути не більше {0}.",
	"gtefield":       "Значення має бути не менше значення поля {0}.",
	"oneof":          "Оберіть одне зі значень: {0}.",
}

// Validator wraps go-playground/validator with the list format tags and a uk translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a validator with custom tags and translations registered.
func New() (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)

	if err := v.RegisterValidation(TagIntList, format(func(s string) error {
		_, err := scoring.ParseIntList(s)
		return err
	})); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation(TagFloatList, format(func(s string) error {
		_, err := scoring.ParseFloatList(s)
		return err
	})); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation(TagWeightedPairs, format(func(s string) error {
		_, err := scoring.ParsePairs(s)
		return err
	})); err != nil {
		return nil, err
	}

	if err := v.RegisterValidation(TagPeriodTitle, format(checkPeriodTitle)); err != nil {
		return nil, err
	}

	locale := uk.New()
	trans, _ := ut.New(locale, locale).GetTranslator(locale.Locale())

	for tag, text := range messages {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
			return t.Add(tag, text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			param := fe.Param()
			if tag == "required" {
				param = fe.Field()
			}
			msg, err := t.T(tag, param)
			if err != nil {
				return fe.Error()
			}
			return msg
		})
		if err != nil {
			return nil, err
		}
	}

	return &Validator{validate: v, trans: trans}, nil
}

// MustNew is New for process start-up.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Engine exposes the underlying validator for services that take one directly.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns a VALIDATION_ERROR carrying one message per failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid payload")
	}

	details := make(map[string]string, len(fieldErrs))
	for namespace, msg := range fieldErrs.Translate(v.trans) {
		details[fieldPath(namespace)] = msg
	}
	out := appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid payload"), details)
	out.Err = err
	return out
}

func format(parse func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return parse(fl.Field().String()) == nil
	}
}

// checkPeriodTitle accepts "YYYY/YYYY" where the second year follows the first.
func checkPeriodTitle(s string) error {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return errors.New("period title must look like 2023/2024")
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	if to != from+1 {
		return errors.New("period years must be consecutive")
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
