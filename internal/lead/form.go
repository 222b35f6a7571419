package lead

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ContactForm is the form-encoded body of the contact page.
type ContactForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Phone    string `form:"phone" validate:"omitempty,max=20"`
	Service  string `form:"service" validate:"service"`
	Message  string `form:"message" validate:"required,max=5000"`
	Botcheck string `form:"botcheck"`
}

// MovingRequestForm is the form-encoded body of the home page quote form.
type MovingRequestForm struct {
	LocationFrom string `form:"location_from" validate:"required,max=200"`
	LocationTo   string `form:"location_to" validate:"required,max=200"`
	Name         string `form:"name" validate:"required,max=100"`
	Email        string `form:"email" validate:"required,email,max=254"`
	Phone        string `form:"phone" validate:"omitempty,max=20"`
	Date         string `form:"date" validate:"required,datetime=2006-01-02"`
	Botcheck     string `form:"botcheck"`
}

func (f *ContactForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Service = strings.TrimSpace(f.Service)
	f.Message = strings.TrimSpace(f.Message)
}

func (f *MovingRequestForm) normalize() {
	f.LocationFrom = strings.TrimSpace(f.LocationFrom)
	f.LocationTo = strings.TrimSpace(f.LocationTo)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Date = strings.TrimSpace(f.Date)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("service", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		for _, c := range ServiceChoices {
			if s == c {
				return true
			}
		}
		return false
	})
	return v
}

// fieldErrors converts validator output into form field messages.
func fieldErrors(err error) *ValidationError {
	verr := newValidationError(ErrInvalid)
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.NonField = append(verr.NonField, "The submission could not be processed.")
		return verr
	}
	for _, fe := range errs {
		if _, seen := verr.Fields[fe.Field()]; seen {
			continue
		}
		verr.Fields[fe.Field()] = messageFor(fe)
	}
	return verr
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "service":
		return "Select a valid choice."
	case "datetime":
		return "Enter a valid date."
	default:
		return "Enter a valid value."
	}
}
