package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/artium/indicacoes-api/internal/middleware"
	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ReferralHandler exposes the visitor's referral forms as JSON
type ReferralHandler struct{}

func NewReferralHandler() *ReferralHandler {
	return &ReferralHandler{}
}

// GetForm returns the active form and drains pending notifications
func (h *ReferralHandler) GetForm(c *gin.Context) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}
	respondForm(c, http.StatusOK, selector)
}

// SwitchMode activates the talent or company form
func (h *ReferralHandler) SwitchMode(c *gin.Context) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}

	var req models.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	kind, err := models.ParseReferralKind(req.Kind)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	selector.Switch(kind)
	respondForm(c, http.StatusOK, selector)
}

// SelectResume judges a resume for the talent form without submitting
func (h *ReferralHandler) SelectResume(c *gin.Context) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}
	wf, ok := requireActive(c, selector, models.ReferralKindTalent)
	if !ok {
		return
	}

	if !isMultipart(c) {
		respondError(c, http.StatusBadRequest, "Resume must be sent as multipart/form-data", nil)
		return
	}
	_, att, err := readTalentMultipart(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	if att == nil {
		respondError(c, http.StatusBadRequest, "Resume file is required", nil)
		return
	}

	if err := wf.SelectAttachment(*att); err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondForm(c, http.StatusOK, selector)
}

// SubmitTalent submits the talent form, JSON or multipart with a resume
func (h *ReferralHandler) SubmitTalent(c *gin.Context) {
	h.submit(c, models.ReferralKindTalent)
}

// SubmitCompany submits the company form
func (h *ReferralHandler) SubmitCompany(c *gin.Context) {
	h.submit(c, models.ReferralKindCompany)
}

func (h *ReferralHandler) submit(c *gin.Context, kind models.ReferralKind) {
	selector, ok := selectorOrAbort(c)
	if !ok {
		return
	}
	wf, ok := requireActive(c, selector, kind)
	if !ok {
		return
	}

	form, att, err := bindReferral(c, kind)
	if err != nil {
		respondBindError(c, err)
		return
	}

	if att != nil {
		// a rejected file stays on the form as the resume error
		_ = wf.SelectAttachment(*att) //nolint:errcheck // surfaced by Submit
	}

	if _, err := wf.Submit(c.Request.Context(), form); err != nil {
		respondWorkflowError(c, err)
		return
	}
	respondForm(c, http.StatusOK, selector)
}

// bindReferral reads the form fields and, for talent multipart bodies, the resume
func bindReferral(c *gin.Context, kind models.ReferralKind) (models.ReferralForm, *models.Attachment, error) {
	var form models.ReferralForm

	if !isMultipart(c) {
		err := c.ShouldBindJSON(&form)
		return form, nil, err
	}

	if kind == models.ReferralKindTalent {
		return readTalentMultipart(c)
	}

	err := c.ShouldBindWith(&form, binding.FormMultipart)
	return form, nil, err
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

func selectorOrAbort(c *gin.Context) (*session.Selector, bool) {
	selector, err := middleware.GetSelector(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return nil, false
	}
	return selector, true
}

// requireActive returns the workflow of kind, rejecting requests aimed at the hidden form
func requireActive(c *gin.Context, selector *session.Selector, kind models.ReferralKind) (*workflow.Workflow, bool) {
	wf, ok := selector.WorkflowFor(kind)
	if !ok {
		respondError(c, http.StatusConflict, fmt.Sprintf("The %s form is not active", kind),
			fmt.Errorf("form mode is %s, request targets %s", selector.Active(), kind))
		return nil, false
	}
	return wf, true
}

func respondForm(c *gin.Context, status int, selector *session.Selector) {
	c.JSON(status, models.FormResponse{
		Form:          selector.Workflow().Snapshot(),
		Notifications: selector.DrainToasts(),
	})
}
