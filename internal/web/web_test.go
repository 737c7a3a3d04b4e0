package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page Page) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, IndexTemplate, page))
	return buf.String()
}

func basePage() Page {
	return Page{
		Content: DefaultContent("Artium Soluções", "https://artiumsolucoes.com.br/", "https://artiumsolucoes.com.br/#contato"),
		Active:  models.ReferralKindTalent,
		Form: models.FormView{
			Kind:      models.ReferralKindTalent,
			State:     "editing",
			CanSubmit: true,
		},
		Year: 2026,
	}
}

func TestIndex_RendersShell(t *testing.T) {
	html := render(t, basePage())

	assert.Contains(t, html, "transformam negócios")
	assert.Contains(t, html, `href="#formularios"`)
	assert.Contains(t, html, `id="formularios"`)
	assert.Contains(t, html, "Programa de Indicações")
	for _, b := range DefaultContent("Artium Soluções", "", "").Benefits {
		assert.Contains(t, html, b.Title)
	}
	assert.Contains(t, html, "© 2026 Artium Soluções. Todos os direitos reservados.")
	assert.Contains(t, html, `href="https://artiumsolucoes.com.br/#contato"`)
	assert.NotContains(t, html, "http-equiv=\"refresh\"")
	assert.NotContains(t, html, "recaptcha/api.js")
}

func TestIndex_TalentFormWithErrors(t *testing.T) {
	page := basePage()
	page.Form.Values = models.ReferralForm{Name: `<b>Ana</b>`, Email: "ana@"}
	page.Form.Errors = map[string]string{
		"email":  "Email inválido",
		"resume": "Currículo é obrigatório",
	}

	html := render(t, page)

	assert.Contains(t, html, `action="/indicacoes/talento"`)
	assert.Contains(t, html, `enctype="multipart/form-data"`)
	assert.Contains(t, html, "Email inválido")
	assert.Contains(t, html, "Currículo é obrigatório")
	assert.Contains(t, html, "&lt;b&gt;Ana&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Ana</b>")
	assert.Contains(t, html, "Enviar Indicação de Talento")
	assert.NotContains(t, html, `name="companyName"`)
}

func TestIndex_CompanyForm(t *testing.T) {
	page := basePage()
	page.Active = models.ReferralKindCompany
	page.Form.Kind = models.ReferralKindCompany
	page.Form.Errors = map[string]string{"website": "URL inválida"}
	page.RecaptchaSiteKey = "site-key"

	html := render(t, page)

	assert.Contains(t, html, `action="/indicacoes/empresa"`)
	assert.Contains(t, html, "URL inválida")
	assert.Contains(t, html, `data-sitekey="site-key"`)
	assert.Contains(t, html, "recaptcha/api.js")
	assert.NotContains(t, html, `name="resume"`)
}

func TestIndex_ConfirmationAndToast(t *testing.T) {
	page := basePage()
	page.Form.State = "succeeded"
	page.Form.CanSubmit = false
	page.Form.Confirmation = "Obrigado por indicar um talento para a Artium Soluções. Nossa equipe entrará em contato em breve."
	page.Toasts = []models.Notification{{Title: "Indicação enviada com sucesso!", Description: "Obrigado por indicar um talento."}}
	page.RefreshSeconds = 3

	html := render(t, page)

	assert.Contains(t, html, "Indicação Enviada!")
	assert.Contains(t, html, page.Form.Confirmation)
	assert.Contains(t, html, "Indicação enviada com sucesso!")
	assert.Contains(t, html, `content="3;url=/#formularios"`)
	assert.NotContains(t, html, `action="/indicacoes/talento"`)
}

func TestIndex_SubmittingDisablesButton(t *testing.T) {
	page := basePage()
	page.Form.State = "submitting"
	page.Form.CanSubmit = false

	html := render(t, page)

	assert.Contains(t, html, "disabled")
	assert.Contains(t, html, "Enviando...")
}

func TestStatic_ServesStylesheet(t *testing.T) {
	f, err := Static().Open("styles.css")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = Static().Open("missing.css")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
