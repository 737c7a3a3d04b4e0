package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a wire field name to the message shown under it
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fe[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type talentSchema struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"required,min=10,max=20"`
	LinkedIn    string `json:"linkedin" validate:"omitempty,url"`
	Interest    string `json:"interest" validate:"max=500"`
	Observation string `json:"observation" validate:"max=1000"`
}

type companySchema struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"required,min=10,max=20"`
	Website     string `json:"website" validate:"omitempty,url"`
	Interest    string `json:"interest" validate:"max=500"`
	Observation string `json:"observation" validate:"max=1000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Trim returns a copy of form with surrounding whitespace removed
func Trim(form models.ReferralForm) models.ReferralForm {
	return models.ReferralForm{
		Name:           strings.TrimSpace(form.Name),
		CompanyName:    strings.TrimSpace(form.CompanyName),
		Email:          strings.TrimSpace(form.Email),
		Phone:          strings.TrimSpace(form.Phone),
		LinkedIn:       strings.TrimSpace(form.LinkedIn),
		Website:        strings.TrimSpace(form.Website),
		Interest:       strings.TrimSpace(form.Interest),
		Observation:    strings.TrimSpace(form.Observation),
		RecaptchaToken: strings.TrimSpace(form.RecaptchaToken),
	}
}

// ValidateTalent checks the talent fields. The resume is judged separately.
func ValidateTalent(form models.ReferralForm) (*models.TalentReferral, FieldErrors) {
	form = Trim(form)

	schema := talentSchema{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		LinkedIn:    form.LinkedIn,
		Interest:    form.Interest,
		Observation: form.Observation,
	}
	if errs := check(schema); errs != nil {
		return nil, errs
	}

	return &models.TalentReferral{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		PhoneE164:   NormalizePhone(form.Phone),
		LinkedIn:    form.LinkedIn,
		Interest:    form.Interest,
		Observation: form.Observation,
	}, nil
}

// ValidateCompany checks the company fields
func ValidateCompany(form models.ReferralForm) (*models.CompanyReferral, FieldErrors) {
	form = Trim(form)

	schema := companySchema{
		CompanyName: form.CompanyName,
		Email:       form.Email,
		Phone:       form.Phone,
		Website:     form.Website,
		Interest:    form.Interest,
		Observation: form.Observation,
	}
	if errs := check(schema); errs != nil {
		return nil, errs
	}

	return &models.CompanyReferral{
		CompanyName: form.CompanyName,
		Email:       form.Email,
		Phone:       form.Phone,
		PhoneE164:   NormalizePhone(form.Phone),
		Website:     form.Website,
		Interest:    form.Interest,
		Observation: form.Observation,
	}, nil
}

func check(schema any) FieldErrors {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return FieldErrors{"form": err.Error()}
	}

	errs := FieldErrors{}
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		// first failing rule wins, like the browser form shows one message per field
		if _, exists := errs[field]; !exists {
			errs[field] = messageFor(field, fieldError.Tag())
		}
	}
	return errs
}
