package services

import (
	"context"

	"github.com/artium/indicacoes-api/internal/models"
)

// ReferralStore persists accepted referrals
type ReferralStore interface {
	Create(ctx context.Context, referral *models.Referral, resumeURL string) (bool, error)
}

// DocumentStore uploads resumes and returns their URL
type DocumentStore interface {
	UploadDocument(ctx context.Context, key string, data []byte, contentType, originalName string) (string, error)
}

// CaptchaVerifier checks the reCAPTCHA token sent with the form
type CaptchaVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) error
}
