// Package bind decodes JSON request bodies and validates them with go-playground/validator
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tag funcs
type FieldLevel = validator.FieldLevel

// MaxBody caps a request body
const MaxBody = 1 << 20

// Validator pairs the validator with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var (
	once sync.Once
	svc  *Validator
)

// shorter than the stock english texts
var short = map[string]string{
	"min": "{0} must be at least {1}",
	"max": "{0} must be at most {1}",
}

// Get returns the shared validator, building it on first use
// field names in messages come from json tags
func Get() *Validator {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		for tag, text := range short {
			_ = v.RegisterTranslation(tag, trans, adder(tag, text), translate(tag, true))
		}
		svc = &Validator{V: v, Trans: trans}
	})
	return svc
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func adder(tag, text string) validator.RegisterTranslationsFunc {
	return func(t ut.Translator) error { return t.Add(tag, text, true) }
}

func translate(tag string, withParam bool) validator.TranslationFunc {
	return func(t ut.Translator, fe validator.FieldError) string {
		params := []string{fe.Field()}
		if withParam {
			params = append(params, fe.Param())
		}
		msg, _ := t.T(tag, params...)
		return msg
	}
}

// RegisterTag adds a validation tag whose failure reads as message
// message may reference the field name as {0}
func RegisterTag(tag, message string, fn validator.Func) error {
	s := Get()
	if err := s.V.RegisterValidation(tag, fn); err != nil {
		return err
	}
	return s.V.RegisterTranslation(tag, s.Trans, adder(tag, message), translate(tag, false))
}

// ParseJSON decodes the body into T, rejects unknown fields and trailing data, then validates
// decode failures are JSON errors; validation failures carry the first offending field
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("closing request body")
		}
	}()

	body := bufio.NewReader(io.LimitReader(r.Body, MaxBody))
	if _, err := body.Peek(1); err != nil {
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().V.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator misuse")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := FieldAndMessage(err)
		return zero, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return dst, nil
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
