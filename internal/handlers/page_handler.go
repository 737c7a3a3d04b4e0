package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// formsAnchor is where every form post lands after the redirect
const formsAnchor = "/#" + web.AnchorForms

// PageHandler renders the landing page and accepts its plain HTML forms.
// Every POST ends in a 303 back to the page, which shows the updated form.
type PageHandler struct {
	content          web.Content
	recaptchaSiteKey string
	dwell            time.Duration
	now              func() time.Time
}

func NewPageHandler(content web.Content, recaptchaSiteKey string, dwell time.Duration) *PageHandler {
	return &PageHandler{
		content:          content,
		recaptchaSiteKey: recaptchaSiteKey,
		dwell:            dwell,
		now:              time.Now,
	}
}

// Index renders the page for the visitor's session
func (h *PageHandler) Index(c *gin.Context) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, web.IndexTemplate, h.page(selector, ""))
}

// SwitchMode handles the tab buttons
func (h *PageHandler) SwitchMode(c *gin.Context) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}

	var req models.ModeRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		attachError(c, err)
		c.Redirect(http.StatusSeeOther, formsAnchor)
		return
	}

	if kind, err := models.ParseReferralKind(req.Kind); err == nil {
		selector.Switch(kind)
	}
	c.Redirect(http.StatusSeeOther, formsAnchor)
}

// SubmitTalent handles the multipart talent form
func (h *PageHandler) SubmitTalent(c *gin.Context) {
	h.submit(c, models.ReferralKindTalent)
}

// SubmitCompany handles the company form
func (h *PageHandler) SubmitCompany(c *gin.Context) {
	h.submit(c, models.ReferralKindCompany)
}

func (h *PageHandler) submit(c *gin.Context, kind models.ReferralKind) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}

	// a post from a stale tab is dropped; the page shows the active form
	wf, ok := selector.WorkflowFor(kind)
	if !ok {
		c.Redirect(http.StatusSeeOther, formsAnchor)
		return
	}

	var form models.ReferralForm
	if kind == models.ReferralKindTalent && isMultipart(c) {
		var att *models.Attachment
		var err error
		form, att, err = readTalentMultipart(c)
		if err != nil {
			h.renderBindError(c, selector, err)
			return
		}
		if att != nil {
			_ = wf.SelectAttachment(*att) //nolint:errcheck // shown as the resume error
		}
	} else if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.renderBindError(c, selector, err)
		return
	}

	// outcome and errors live in the workflow and show after the redirect
	if _, err := wf.Submit(c.Request.Context(), form); err != nil {
		attachError(c, err)
	}
	c.Redirect(http.StatusSeeOther, formsAnchor)
}

func (h *PageHandler) renderBindError(c *gin.Context, selector *session.Selector, err error) {
	attachError(c, err)
	if isBodyTooLarge(err) {
		c.HTML(http.StatusRequestEntityTooLarge, web.IndexTemplate,
			h.page(selector, "O formulário excede o tamanho permitido. Revise os campos e tente novamente."))
		return
	}
	c.HTML(http.StatusBadRequest, web.IndexTemplate, h.page(selector, "Não foi possível ler o formulário. Tente novamente."))
}

func (h *PageHandler) page(selector *session.Selector, notice string) web.Page {
	view := selector.Workflow().Snapshot()

	page := web.Page{
		Content:          h.content,
		Active:           selector.Active(),
		Form:             view,
		Toasts:           selector.DrainToasts(),
		Notice:           notice,
		RecaptchaSiteKey: h.recaptchaSiteKey,
		Year:             h.now().Year(),
	}
	if page.Succeeded() {
		page.RefreshSeconds = int(math.Ceil(h.dwell.Seconds()))
	}
	return page
}
