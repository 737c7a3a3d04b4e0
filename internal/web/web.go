package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/workflow"
)

// IndexTemplate is the name of the landing page template
const IndexTemplate = "index.html"

// AnchorForms is the id of the forms section, the hero CTA target
const AnchorForms = "formularios"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is everything the landing page renders for one visitor
type Page struct {
	Content          Content
	Active           models.ReferralKind
	Form             models.FormView
	Toasts           []models.Notification
	Notice           string
	RecaptchaSiteKey string
	RefreshSeconds   int
	Year             int
}

// IsTalent reports whether the talent tab is active
func (p Page) IsTalent() bool {
	return p.Active == models.ReferralKindTalent
}

// Copy returns the texts of the active form
func (p Page) Copy() FormCopy {
	return p.Content.FormCopy(p.Active)
}

// Succeeded reports whether the confirmation replaces the form
func (p Page) Succeeded() bool {
	return p.Form.State == workflow.StateSucceeded.String()
}

// Submitting reports whether a submission is in flight
func (p Page) Submitting() bool {
	return p.Form.State == workflow.StateSubmitting.String()
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Static serves the embedded stylesheet and images
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.FS(sub)
}
