package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ano333333/llm-time-manager/internal/app/models"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator. Field names in its errors are the json
// names of the fields.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(jsonName)
		if err := instance.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return instance
}

// FieldError reports the request field a rule rejected.
type FieldError struct {
	Target string
	Rule   string
}

func (e *FieldError) Error() string {
	return "invalid parameter " + e.Target + ": " + e.Rule
}

func (e *FieldError) Unwrap() error {
	return models.ErrValidation
}

// Invalid builds a FieldError for a rule checked outside the validator.
func Invalid(target, rule string) *FieldError {
	return &FieldError{Target: target, Rule: rule}
}

// Struct validates v and returns the first violation as a *FieldError.
func Struct(v any) error {
	errs, err := Violations(v)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Violations returns every rule v breaks, in field order.
func Violations(v any) ([]*FieldError, error) {
	err := Get().Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]*FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{Target: fe.Field(), Rule: fe.Tag()})
	}
	return out, nil
}

// Checker is implemented by request bodies with rules beyond struct tags.
type Checker interface {
	Check() error
}

// Check runs v.Check when v implements Checker and Struct otherwise.
func Check(v any) error {
	if c, ok := v.(Checker); ok {
		return c.Check()
	}
	return Struct(v)
}

// First returns the error among errs whose target comes first in the field
// order of v. Ties keep the earlier argument. An error that is not a
// *FieldError is returned as is.
func First[E error](v any, errs ...E) error {
	order := fieldOrder(reflect.TypeOf(v))
	var (
		first    *FieldError
		firstIdx int
	)
	for _, err := range errs {
		if rv := reflect.ValueOf(err); !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
			continue
		}
		var fe *FieldError
		if !errors.As(err, &fe) {
			return err
		}
		idx, ok := order[fe.Target]
		if !ok {
			idx = len(order)
		}
		if first == nil || idx < firstIdx {
			first, firstIdx = fe, idx
		}
	}
	if first == nil {
		return nil
	}
	return first
}

// ErrMalformedJSON marks a body that is not a JSON object at all.
var ErrMalformedJSON = errors.New("invalid JSON format")

// DecodeJSON decodes the object in data into the struct v points to, one
// field at a time in field order. A value of the wrong type leaves its field
// unset; the first such field is returned as a *FieldError once every field
// has been decoded. Anything that is not a JSON object is ErrMalformedJSON.
func DecodeJSON(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.New("validation: DecodeJSON needs a struct pointer")
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrMalformedJSON
	}

	elem := rv.Elem()
	var typeErr error
	for i := 0; i < elem.NumField(); i++ {
		sf := elem.Type().Field(i)
		name := jsonName(sf)
		if name == "" || !sf.IsExported() {
			continue
		}
		msg, ok := lookup(raw, name)
		if !ok {
			continue
		}
		field := reflect.New(sf.Type)
		if err := json.Unmarshal(msg, field.Interface()); err != nil {
			if typeErr == nil {
				typeErr = &FieldError{Target: name, Rule: "type"}
			}
			continue
		}
		elem.Field(i).Set(field.Elem())
	}
	return typeErr
}

// lookup prefers an exact key and falls back to a case-insensitive one.
func lookup(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if msg, ok := raw[name]; ok {
		return msg, true
	}
	for k, msg := range raw {
		if strings.EqualFold(k, name) {
			return msg, true
		}
	}
	return nil, false
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func fieldOrder(t reflect.Type) map[string]int {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	order := map[string]int{}
	if t == nil || t.Kind() != reflect.Struct {
		return order
	}
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" {
			order[name] = i
		}
	}
	return order
}
