package workflow

import (
	"errors"

	"github.com/artium/indicacoes-api/internal/validation"
	apperrors "github.com/artium/indicacoes-api/pkg/errors"
)

var (
	ErrSubmissionInProgress  = apperrors.ConflictError("submission already in progress")
	ErrAwaitingReset         = apperrors.ConflictError("referral already sent, form resets shortly")
	ErrNotEditing            = apperrors.ConflictError("form is not accepting changes")
	ErrClosed                = apperrors.ConflictError("form was discarded")
	ErrAttachmentNotAccepted = apperrors.InvalidInputError("resume", "this form takes no attachment")
	ErrSubmissionFailed      = errors.New("submission failed")
)

// ValidationError carries the per-field messages of a rejected submit
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}
