// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator pairs the shared validator with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

// Get returns the process wide validator
var Get = sync.OnceValue(func() *Validator {
	enLoc := en.New()
	trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	// messages and fields use the json names clients send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	shortMessage(v, trans, "min", "{0} must be at least {1}")
	shortMessage(v, trans, "max", "{0} must be at most {1}")

	return &Validator{V: v, Trans: trans}
})

// Options controls ParseJSON
type Options struct {
	MaxBytes       int64 // 1MB when zero
	AllowUnknown   bool
	AllowEmptyBody bool
}

// ParseJSON decodes the body into T and validates it
//
// Failures are ErrorCodeJSON for malformed bodies and ErrorCodeValidation,
// carrying the offending json field, for values that break a tag.
// GET style requests may send no body and get the zero T.
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1 << 20
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("request body close failed")
		}
	}()

	// peek one byte so an empty body is told apart from bad json
	head := make([]byte, 1)
	n, _ := io.ReadFull(r.Body, head)
	if n == 0 {
		if o.AllowEmptyBody || r.Method == http.MethodGet || r.Method == http.MethodHead {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(io.LimitReader(io.MultiReader(bytes.NewReader(head), r.Body), o.MaxBytes))
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().V.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator cannot check request type")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := FieldAndMessage(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
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

func shortMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
