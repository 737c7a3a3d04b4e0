package handlers

import (
	"errors"
	"net/http"

	"github.com/artium/indicacoes-api/internal/validation"
	"github.com/artium/indicacoes-api/internal/workflow"
	apperrors "github.com/artium/indicacoes-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondWorkflowError maps workflow and attachment failures to statuses
func respondWorkflowError(c *gin.Context, err error) {
	var validationErr *workflow.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondErrorWithDetails(c, http.StatusUnprocessableEntity, "Validation failed", validationErr.Fields, err)
	case errors.Is(err, validation.ErrAttachmentWrongType), errors.Is(err, validation.ErrAttachmentTooLarge):
		respondErrorWithDetails(c, http.StatusUnprocessableEntity, "Validation failed",
			validation.FieldErrors{resumeField: validation.AttachmentMessage(err)}, err)
	case errors.Is(err, workflow.ErrSubmissionFailed):
		respondError(c, http.StatusServiceUnavailable, workflow.SubmissionFailedMessage, err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, "Form is not accepting this request right now", err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid request", err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// respondBindError maps body parsing failures to 413 or 400
func respondBindError(c *gin.Context, err error) {
	if isBodyTooLarge(err) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}
	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", err.Error(), err)
}
