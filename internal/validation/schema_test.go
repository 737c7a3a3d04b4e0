package validation

import (
	"strings"
	"testing"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTalentForm() models.ReferralForm {
	return models.ReferralForm{
		Name:  "Ana Silva",
		Email: "ana@example.com",
		Phone: "11999998888",
	}
}

// longEmail is well formed but 259 characters long
func longEmail() string {
	label := strings.Repeat("b", 62)
	return "ana@" + strings.Join([]string{label, label, label, label}, ".") + ".com"
}

func validCompanyForm() models.ReferralForm {
	return models.ReferralForm{
		CompanyName: "Acme Tecnologia",
		Email:       "contato@acme.com.br",
		Phone:       "(11) 3333-4444",
	}
}

func TestValidateTalent_Valid(t *testing.T) {
	form := validTalentForm()
	form.Name = "  Ana Silva  "
	form.LinkedIn = "https://www.linkedin.com/in/anasilva"
	form.Interest = "Backend"

	got, errs := ValidateTalent(form)

	require.Nil(t, errs)
	require.NotNil(t, got)
	assert.Equal(t, "Ana Silva", got.Name)
	assert.Equal(t, "+5511999998888", got.PhoneE164)
	assert.Equal(t, "https://www.linkedin.com/in/anasilva", got.LinkedIn)
	assert.Nil(t, got.Resume)
}

func TestValidateTalent_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *models.ReferralForm)
		field   string
		message string
	}{
		{name: "blank name", mutate: func(f *models.ReferralForm) { f.Name = "   " }, field: "name", message: "Nome é obrigatório"},
		{name: "long name", mutate: func(f *models.ReferralForm) { f.Name = strings.Repeat("a", 101) }, field: "name", message: "Nome muito longo"},
		{name: "missing email", mutate: func(f *models.ReferralForm) { f.Email = "" }, field: "email", message: "Email inválido"},
		{name: "bad email", mutate: func(f *models.ReferralForm) { f.Email = "ana@" }, field: "email", message: "Email inválido"},
		{name: "long email", mutate: func(f *models.ReferralForm) { f.Email = longEmail() }, field: "email", message: "Email muito longo"},
		{name: "short phone", mutate: func(f *models.ReferralForm) { f.Phone = "119999" }, field: "phone", message: "Telefone inválido"},
		{name: "long phone", mutate: func(f *models.ReferralForm) { f.Phone = strings.Repeat("1", 21) }, field: "phone", message: "Telefone muito longo"},
		{name: "bad linkedin", mutate: func(f *models.ReferralForm) { f.LinkedIn = "linkedin/ana" }, field: "linkedin", message: "URL inválida"},
		{name: "long interest", mutate: func(f *models.ReferralForm) { f.Interest = strings.Repeat("x", 501) }, field: "interest", message: "Texto muito longo"},
		{name: "long observation", mutate: func(f *models.ReferralForm) { f.Observation = strings.Repeat("x", 1001) }, field: "observation", message: "Texto muito longo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validTalentForm()
			tt.mutate(&form)

			got, errs := ValidateTalent(form)

			assert.Nil(t, got)
			require.NotNil(t, errs)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateTalent_LengthsCountCharacters(t *testing.T) {
	form := validTalentForm()
	form.Name = strings.Repeat("ã", 100) // 200 bytes, 100 characters

	got, errs := ValidateTalent(form)

	assert.Nil(t, errs)
	assert.NotNil(t, got)
}

func TestValidateTalent_ReportsEveryBadField(t *testing.T) {
	_, errs := ValidateTalent(models.ReferralForm{})

	assert.Equal(t, FieldErrors{
		"name":  "Nome é obrigatório",
		"email": "Email inválido",
		"phone": "Telefone inválido",
	}, errs)
}

func TestValidateCompany_Valid(t *testing.T) {
	form := validCompanyForm()
	form.Website = "https://acme.com.br"

	got, errs := ValidateCompany(form)

	require.Nil(t, errs)
	assert.Equal(t, "Acme Tecnologia", got.CompanyName)
	assert.Equal(t, "https://acme.com.br", got.Website)
	assert.Equal(t, "+551133334444", got.PhoneE164)
}

func TestValidateCompany_MissingRequiredFields(t *testing.T) {
	for _, field := range []string{"companyName", "email", "phone"} {
		t.Run(field, func(t *testing.T) {
			form := validCompanyForm()
			switch field {
			case "companyName":
				form.CompanyName = ""
			case "email":
				form.Email = ""
			case "phone":
				form.Phone = ""
			}

			got, errs := ValidateCompany(form)

			assert.Nil(t, got)
			assert.NotEmpty(t, errs[field])
		})
	}
}

func TestValidateCompany_InvalidWebsite(t *testing.T) {
	form := validCompanyForm()
	form.Website = "not-a-url"

	_, errs := ValidateCompany(form)

	assert.Equal(t, FieldErrors{"website": "URL inválida"}, errs)
}

func TestValidateCompany_IgnoresTalentFields(t *testing.T) {
	form := validCompanyForm()
	form.LinkedIn = "not-a-url"
	form.Name = strings.Repeat("a", 500)

	_, errs := ValidateCompany(form)

	assert.Nil(t, errs)
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"phone": "Telefone inválido", "email": "Email inválido"}
	assert.Equal(t, "validation failed: email: Email inválido; phone: Telefone inválido", err.Error())
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+5511999998888", NormalizePhone("(11) 99999-8888"))
	assert.Equal(t, "+351912345678", NormalizePhone("+351 912 345 678"))
	assert.Empty(t, NormalizePhone("0000000000"))
	assert.Empty(t, NormalizePhone("abc"))
}
