package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are range checked as numbers.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_places", decimalPlaces)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

// decimalPlaces limits the number of fractional digits of a number.
func decimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(int32(places)))
	}
	return false
}

// maxBytes bounds the byte length of a string; max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate checks the validate tags of a request payload and reports the
// first violation as a BadRequest error.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Internal(err)
	}
	return BadRequest(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "Missing " + field
	case "email":
		return "Invalid " + field
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", capitalize(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", capitalize(field), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes long", capitalize(field), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be less than %s", capitalize(field), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must not be greater than %s", capitalize(field), fe.Param())
	case "decimal_places":
		return fmt.Sprintf("%s must have at most %s decimal places", capitalize(field), fe.Param())
	}
	return "Invalid " + field
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
