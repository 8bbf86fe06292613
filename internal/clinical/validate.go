package clinical

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"cardiod/pkg/types"
)

// bpMessage is reported when the blood pressure pair is inverted or equal.
const bpMessage = "Systolic BP (ap_hi) must be strictly greater than Diastolic BP (ap_lo)"

// ValidationError reports every rule a ClinicalData payload violates.
type ValidationError struct {
	Msg    string
	Fields []types.FieldError
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts the ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so messages match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			x := f.Float()
			return !math.IsInf(x, 0) && x == math.Trunc(x)
		}
		return true
	})
	return v
}

// Validate checks field presence, integrality and ranges, then the
// systolic/diastolic ordering. The ordering is only checked once every field
// is individually valid.
func Validate(d types.ClinicalData) error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Msg: err.Error()}
		}
		ve := &ValidationError{Fields: make([]types.FieldError, 0, len(verrs))}
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			ve.Fields = append(ve.Fields, types.FieldError{Field: fe.Field(), Rule: rule})
			parts = append(parts, fe.Field()+": "+rule)
		}
		noun := "errors"
		if len(parts) == 1 {
			noun = "error"
		}
		ve.Msg = fmt.Sprintf("%d validation %s: %s", len(parts), noun, strings.Join(parts, "; "))
		return ve
	}
	if *d.APHi <= *d.APLo {
		return &ValidationError{
			Msg:    bpMessage,
			Fields: []types.FieldError{{Field: "ap_hi", Rule: "gtfield=ap_lo"}},
		}
	}
	return nil
}
