package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/identity"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the national_id rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return identity.Validate(fl.Field().String())
	})
	return v
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func describeValidation(err error) (string, []fieldError) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error(), nil
	}
	fields := make([]fieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := trimRoot(fe.Namespace())
		fields = append(fields, fieldError{Field: field, Rule: fe.Tag()})
		names = append(names, fmt.Sprintf("%s (%s)", field, fe.Tag()))
	}
	return "invalid fields: " + strings.Join(names, ", "), fields
}

// trimRoot drops the struct name from a namespace such as
// "createBookingRequest.Passengers[1].NationalID".
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
