package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskman-api/internal/domain"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// Global validator instance for reuse. Field errors are reported under their
// JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates a decoded request. Types with a Validate() error
// method validate themselves; anything else is checked against its
// `validate` struct tags. Failures come back as *domain.ValidationError.
func ValidateRequest(v interface{}) error {
	if sv, ok := v.(interface{ Validate() error }); ok {
		return sv.Validate()
	}

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		verr := &domain.ValidationError{}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), tagMessage(fe.Tag(), fe.Param()))
		}
		return verr
	}
	return nil
}

// CheckField validates a single value against a validator tag expression
// (for example "required,max=100") and records a field error on verr when it fails.
func CheckField(verr *domain.ValidationError, field string, value interface{}, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		verr.Add(field, tagMessage(fieldErrs[0].Tag(), fieldErrs[0].Param()))
		return
	}
	verr.Add(field, "is invalid")
}

// tagMessage maps validation tags to user-facing messages.
func tagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters long", param)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
