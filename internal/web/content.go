package web

import (
	"fmt"

	"github.com/artium/indicacoes-api/internal/models"
)

// Benefit is one tile of the program section
type Benefit struct {
	Icon        string
	Title       string
	Description string
}

// FormCopy holds the texts around one referral form
type FormCopy struct {
	Tab         string
	Heading     string
	Description string
	SubmitLabel string
}

// Content is the static copy of the landing page
type Content struct {
	Organization string
	MainSiteURL  string
	ContactURL   string

	HeroTitle     string
	HeroHighlight string
	HeroSubtitle  string
	HeroCTA       string

	AboutTitle    string
	AboutSubtitle string
	Benefits      []Benefit

	FormsTitle    string
	FormsSubtitle string
	Talent        FormCopy
	Company       FormCopy
}

// DefaultContent returns the page copy for organization
func DefaultContent(organization, mainSiteURL, contactURL string) Content {
	return Content{
		Organization: organization,
		MainSiteURL:  mainSiteURL,
		ContactURL:   contactURL,

		HeroTitle:     "Indique talentos e oportunidades que",
		HeroHighlight: "transformam negócios",
		HeroSubtitle:  fmt.Sprintf("Conecte pessoas e empresas à %s e ajude a construir o futuro da tecnologia.", organization),
		HeroCTA:       "Fazer uma indicação",

		AboutTitle: "Programa de Indicações",
		AboutSubtitle: "Seja parte do nosso crescimento indicando talentos e oportunidades de negócios. " +
			"Juntos, construímos o futuro da tecnologia.",
		Benefits: []Benefit{
			{Icon: "users", Title: "Indique Talentos", Description: "Conhece profissionais excepcionais? Conecte-os com oportunidades incríveis na Artium."},
			{Icon: "building", Title: "Indique Empresas", Description: "Sabe de empresas que precisam de soluções tecnológicas? Apresente-as à Artium."},
			{Icon: "gift", Title: "Seja Recompensado", Description: "Suas indicações de sucesso podem gerar benefícios exclusivos para você."},
			{Icon: "handshake", Title: "Faça Parte", Description: "Contribua para o crescimento de um ecossistema de inovação e tecnologia."},
		},

		FormsTitle:    "Faça sua Indicação",
		FormsSubtitle: "Escolha o tipo de indicação que deseja fazer e preencha o formulário abaixo.",
		Talent: FormCopy{
			Tab:         "Indicar Talento",
			Heading:     "Indicação de Talento",
			Description: "Indique profissionais qualificados para fazer parte da equipe Artium.",
			SubmitLabel: "Enviar Indicação de Talento",
		},
		Company: FormCopy{
			Tab:         "Indicar Empresa",
			Heading:     "Indicação de Empresa",
			Description: "Indique empresas que podem se beneficiar das soluções da Artium.",
			SubmitLabel: "Enviar Indicação de Empresa",
		},
	}
}

// FormCopy returns the copy of the form for kind
func (c Content) FormCopy(kind models.ReferralKind) FormCopy {
	if kind == models.ReferralKindCompany {
		return c.Company
	}
	return c.Talent
}
