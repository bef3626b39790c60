// Package forms validates account forms locally before anything is sent to the API.
//
// Validation failures are returned as [shared.ValidationError] keyed by the field's JSON name,
// with one message per field.
package forms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/desertthunder/sportshub/internal/services"
	"github.com/desertthunder/sportshub/internal/shared"
)

// emailPattern is a shape check only; the server decides whether an address is acceptable.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// SignupForm is the account creation form.
type SignupForm struct {
	Username        string `json:"username" label:"Username" validate:"notblank"`
	Email           string `json:"email" label:"Email" validate:"notblank,emailshape"`
	Password        string `json:"password" label:"Password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" label:"Password confirmation" validate:"eqfield=Password"`
	FirstName       string `json:"first_name" label:"First name" validate:"notblank"`
	LastName        string `json:"last_name" label:"Last name" validate:"notblank"`
}

// Request converts the form into the signup request body.
func (f SignupForm) Request() services.SignupRequest {
	return services.SignupRequest{
		Username:  f.Username,
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}

// LoginForm is the credentials form.
type LoginForm struct {
	Email    string `json:"email" label:"Email" validate:"notblank,emailshape"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// ProfileForm edits the logged-in user's profile. A blank password leaves it unchanged.
type ProfileForm struct {
	Username        string `json:"username" label:"Username" validate:"notblank"`
	Email           string `json:"email" label:"Email" validate:"notblank,emailshape"`
	FirstName       string `json:"first_name" label:"First name"`
	LastName        string `json:"last_name" label:"Last name"`
	Password        string `json:"password" label:"Password" validate:"omitempty,min=6"`
	ConfirmPassword string `json:"confirm_password" label:"Password confirmation" validate:"eqfield=Password"`
}

// Update converts the form into the profile update body.
func (f ProfileForm) Update() services.ProfileUpdate {
	return services.ProfileUpdate{
		Username:  f.Username,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Password:  f.Password,
	}
}

// Validator checks forms with go-playground/validator and the custom tags below.
type Validator struct {
	validate *validator.Validate
}

// New creates a [Validator] with the "notblank" and "emailshape" tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}))
	return &Validator{validate: v}
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("forms: %v", err))
	}
}

var std = New()

// Validate checks form with the package validator.
func Validate(ctx context.Context, form any) error {
	return std.Validate(ctx, form)
}

// Validate returns nil or a [shared.ValidationError] describing every invalid field.
func (v *Validator) Validate(ctx context.Context, form any) error {
	err := v.validate.StructCtx(ctx, form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	labels := labelsOf(form)
	out := &shared.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe, labels[fe.Field()])
	}
	return out
}

func message(fe validator.FieldError, label string) string {
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "emailshape":
		return label + " is invalid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	default:
		return label + " is invalid"
	}
}

// labelsOf maps JSON field names to their label tags.
func labelsOf(form any) map[string]string {
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return map[string]string{}
	}
	labels := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		labels[name] = f.Tag.Get("label")
	}
	return labels
}
