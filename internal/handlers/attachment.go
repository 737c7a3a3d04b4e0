package handlers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/validation"
	apperrors "github.com/artium/indicacoes-api/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// resumeField is the multipart field carrying the resume
const resumeField = "resume"

// maxFieldSize bounds a single text field of a multipart form
const maxFieldSize = 64 << 10

// readTalentMultipart streams a multipart talent body. Text fields are mapped
// onto the form; only the first MaxAttachmentSize+1 bytes of the resume are
// kept and the rest is counted and discarded. When the body limit cuts the
// resume short the file is reported as too large with the fields read so far.
// The attachment is nil when no file was chosen.
func readTalentMultipart(c *gin.Context) (models.ReferralForm, *models.Attachment, error) {
	var form models.ReferralForm

	reader, err := c.Request.MultipartReader()
	if err != nil {
		return form, nil, err
	}

	values := url.Values{}
	var att *models.Attachment

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if isBodyTooLarge(err) && att != nil {
				markTooLarge(att)
				break
			}
			return form, nil, err
		}

		if part.FormName() == resumeField && part.FileName() != "" {
			att, err = readResumePart(part)
		} else if part.FormName() != "" {
			err = readFieldPart(part, values)
		}
		part.Close()

		if err != nil {
			if isBodyTooLarge(err) && att != nil {
				markTooLarge(att)
				break
			}
			return form, nil, err
		}
	}

	if err := binding.MapFormWithTag(&form, values, "form"); err != nil {
		return form, nil, err
	}
	return form, att, nil
}

func readFieldPart(part *multipart.Part, values url.Values) error {
	value, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
	if err != nil {
		return err
	}
	if len(value) > maxFieldSize {
		return apperrors.InvalidInputError(part.FormName(), "field too long")
	}
	values.Add(part.FormName(), string(value))
	return nil
}

// readResumePart returns the attachment even when reading fails part way,
// so a body cut short by the size limit still yields the file's name and type
func readResumePart(part *multipart.Part) (*models.Attachment, error) {
	att := &models.Attachment{
		FileName:    filepath.Base(strings.ReplaceAll(part.FileName(), "\\", "/")),
		ContentType: part.Header.Get("Content-Type"),
	}

	data, err := io.ReadAll(io.LimitReader(part, validation.MaxAttachmentSize+1))
	att.Size = int64(len(data))
	if needsSniffing(att.ContentType) {
		att.ContentType = mimetype.Detect(data).String()
	}
	if err != nil {
		return att, err
	}

	if att.Size > validation.MaxAttachmentSize {
		rest, err := io.Copy(io.Discard, part)
		att.Size += rest
		if err != nil {
			return att, err
		}
		return att, nil
	}

	att.Data = data
	return att, nil
}

// markTooLarge flags a resume the body limit did not let through whole
func markTooLarge(att *models.Attachment) {
	att.Data = nil
	if att.Size <= validation.MaxAttachmentSize {
		att.Size = validation.MaxAttachmentSize + 1
	}
}

func needsSniffing(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return mediaType == "application/octet-stream"
}

// isBodyTooLarge reports whether err came from the body size limit
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
