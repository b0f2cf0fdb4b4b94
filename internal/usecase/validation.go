package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 10

var nonDigits = regexp.MustCompile(`\D`)

// Valores aceitos pelos selects do formulário.
var intakeEnums = map[string][]string{
	"previous_experience": {"Hajj", "Umrah", "Both", "Neither"},
	"hajj_status":         {"Just researching", "Seriously considering", "Committed"},
	"travelling_with":     {"Solo", "Spouse/Family", "Friends/Group", "Undecided"},
	"departure_city":      {"Manchester", "London"},
	"rooming_preference":  {"Quad", "Triple", "Double/Twin", "Single", "Flexible"},
	"hear_about_us":       {"Friend/Family", "Masjid", "YouTube", "Instagram", "TikTok", "Google", "Other"},
}

var fieldMessages = map[string]string{
	"fullName":            "Please enter your full name (at least 2 characters)",
	"email":               "Please enter a valid email address",
	"phone":               "Please enter a valid phone number (at least 10 digits)",
	"cityCountry":         "Please enter your city and country",
	"previousExperience":  "Please select your previous experience",
	"hajjStatus":          "Please select your current status",
	"travellingWith":      "Please select who you are travelling with",
	"travellerCount":      "Traveller count must be between 1 and 20",
	"departurePreference": "Please select a valid departure city",
	"roomingPreference":   "Please select a valid rooming preference",
	"callGoals":           "Please share your questions or concerns (at least 10 characters)",
	"hearAboutUs":         "Please select how you heard about us",
	"consent":             "You must agree to be contacted to proceed",
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator embrulha o go-playground/validator com as regras do formulário.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", validatePhone)
	for tag, values := range intakeEnums {
		_ = v.RegisterValidation(tag, oneOf(values))
	}

	return &Validator{v: v}
}

// Struct valida e devolve um erro por campo, na ordem da struct.
func (val *Validator) Struct(s any) []ValidationError {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed on %s", fe.Tag())
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}

func validationFailure(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Message)
	}
	return &DomainError{Code: CodeValidation, Message: strings.Join(parts, "; ")}
}

func validatePhone(fl validator.FieldLevel) bool {
	return isValidPhoneNumber(fl.Field().String())
}

func isValidPhoneNumber(phone string) bool {
	return len(nonDigits.ReplaceAllString(phone, "")) >= minPhoneDigits
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		got := fl.Field().String()
		for _, v := range values {
			if got == v {
				return true
			}
		}
		return false
	}
}
