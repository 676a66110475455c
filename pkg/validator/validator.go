package validator

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9\-+() ]+$`)

type CustomValidator struct {
	validator *validator.Validate
}

// FieldErrors maps json field names to messages. It is returned for
// problems found on partial-update fields.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// patchField is implemented by optional.Value.
type patchField interface {
	IsSet() bool
	IsNull() bool
	Any() interface{}
}

var patchFieldType = reflect.TypeOf((*patchField)(nil)).Elem()

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report json names so error keys match the request body.
	v.RegisterTagNameFunc(jsonName)

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// IsPhone accepts digits, spaces, dashes, plus signs and parentheses.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsClock accepts a 24h wall-clock time written as HH:MM.
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Validate runs the `validate` tags and then the `patch` tags of optional
// fields. A patch field sent as null is rejected unless its tag contains
// "nullable"; an absent one is never checked.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	if errs := cv.validatePatch(i); len(errs) > 0 {
		return errs
	}
	return nil
}

func (cv *CustomValidator) validatePatch(i interface{}) FieldErrors {
	rv := reflect.ValueOf(i)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	errs := FieldErrors{}
	rt := rv.Type()
	for idx := 0; idx < rt.NumField(); idx++ {
		sf := rt.Field(idx)
		if !sf.IsExported() || !sf.Type.Implements(patchFieldType) {
			continue
		}
		field := rv.Field(idx).Interface().(patchField)
		if !field.IsSet() {
			continue
		}

		name := jsonName(sf)
		tag := sf.Tag.Get("patch")
		rules, nullable := splitNullable(tag)

		if field.IsNull() {
			if !nullable {
				errs[name] = name + " cannot be null"
			}
			continue
		}
		if rules == "" {
			continue
		}
		if err := cv.validator.Var(field.Any(), rules); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
				errs[name] = message(name, ve[0].Tag(), ve[0].Param())
			} else {
				errs[name] = name + " is invalid"
			}
		}
	}
	return errs
}

func splitNullable(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	var rules []string
	nullable := false
	for _, part := range strings.Split(tag, ",") {
		if part == "nullable" {
			nullable = true
			continue
		}
		rules = append(rules, part)
	}
	return strings.Join(rules, ","), nullable
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if fieldErrors, ok := err.(FieldErrors); ok {
		for field, msg := range fieldErrors {
			errors[field] = msg
		}
		return errors
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors[e.Field()] = message(e.Field(), e.Tag(), e.Param())
		}
	}

	return errors
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param + " characters"
	case "max":
		return field + " must be at most " + param + " characters"
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "oneof":
		return field + " must be one of: " + param
	case "uuid":
		return field + " must be a valid UUID"
	case "phone":
		return field + " may only contain digits, spaces and + - ( )"
	case "hhmm":
		return field + " must be a time in HH:MM format"
	default:
		return field + " is invalid"
	}
}
