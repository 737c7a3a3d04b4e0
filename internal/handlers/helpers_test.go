package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync/atomic"
	"testing"
	"time"

	"github.com/artium/indicacoes-api/internal/middleware"
	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type stubSubmitter struct {
	err   error
	calls atomic.Int32
	last  atomic.Pointer[models.Referral]
}

func (s *stubSubmitter) Submit(_ context.Context, r *models.Referral) (*models.SubmissionOutcome, error) {
	s.calls.Add(1)
	s.last.Store(r)
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubmissionOutcome{ReferralID: r.ID, Kind: r.Kind, SubmittedAt: r.SubmittedAt}, nil
}

func newTestSelector(t *testing.T, submitter workflow.Submitter) *session.Selector {
	t.Helper()
	selector := session.NewSelector(func(kind models.ReferralKind, n workflow.Notifier) *workflow.Workflow {
		return workflow.New(kind, submitter, n, workflow.Options{Dwell: time.Hour})
	})
	t.Cleanup(selector.Close)
	return selector
}

// withSelector stands in for the visitor session middleware
func withSelector(selector *session.Selector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SelectorContextKey, selector)
		c.Next()
	}
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, file.name))
		if file.contentType != "" {
			header.Set("Content-Type", file.contentType)
		}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func talentFields() map[string]string {
	return map[string]string{
		"name":  "Ana Silva",
		"email": "ana@exemplo.com",
		"phone": "(11) 99999-9999",
	}
}
