package validation

import (
	"errors"
	"mime"
	"strings"

	"github.com/artium/indicacoes-api/internal/models"
)

// MaxAttachmentSize is the largest accepted resume (10 MiB, inclusive)
const MaxAttachmentSize int64 = 10 << 20

var (
	ErrAttachmentWrongType = errors.New("attachment type not accepted")
	ErrAttachmentTooLarge  = errors.New("attachment too large")
)

var acceptedTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// AcceptedTypes lists the accepted media types, for the file input's accept attribute
func AcceptedTypes() []string {
	return []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

// IsAcceptedType reports whether contentType is PDF, DOC or DOCX
func IsAcceptedType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	_, ok := acceptedTypes[strings.ToLower(mediaType)]
	return ok
}

// ValidateAttachment judges the type first, then the size
func ValidateAttachment(att models.Attachment) error {
	if !IsAcceptedType(att.ContentType) {
		return ErrAttachmentWrongType
	}
	if att.Size > MaxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	return nil
}

// AttachmentMessage is the text shown under the file input
func AttachmentMessage(err error) string {
	switch {
	case errors.Is(err, ErrAttachmentWrongType):
		return "Formato inválido. Aceito: PDF ou DOC/DOCX"
	case errors.Is(err, ErrAttachmentTooLarge):
		return "Arquivo muito grande. Máximo: 10MB"
	default:
		return msgInvalid
	}
}

// AttachmentReason is the metric label for a rejection
func AttachmentReason(err error) string {
	switch {
	case errors.Is(err, ErrAttachmentWrongType):
		return "wrong_type"
	case errors.Is(err, ErrAttachmentTooLarge):
		return "too_large"
	default:
		return "other"
	}
}
