package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/artium/indicacoes-api/config"
	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/pkg/circuitbreaker"
	apperrors "github.com/artium/indicacoes-api/pkg/errors"
	"github.com/artium/indicacoes-api/pkg/httpclient"
	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/recaptcha"
	"github.com/artium/indicacoes-api/pkg/retry"
	"github.com/artium/indicacoes-api/pkg/storage"
	"github.com/artium/indicacoes-api/pkg/tracing"
	"github.com/artium/indicacoes-api/pkg/trigger"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReferralService delivers referrals to storage and the database
type ReferralService struct {
	store      ReferralStore
	documents  DocumentStore
	captcha    CaptchaVerifier
	config     *config.Config
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewReferralService creates a new referral service instance
func NewReferralService(
	store ReferralStore,
	documents DocumentStore,
	captcha CaptchaVerifier,
	cfg *config.Config,
	httpClient httpclient.Client,
) *ReferralService {
	return &ReferralService{
		store:      store,
		documents:  documents,
		captcha:    captcha,
		config:     cfg,
		httpClient: httpClient,
		breaker:    circuitbreaker.New(circuitbreaker.DefaultConfig("object-storage")),
	}
}

// Submit verifies, uploads and stores one referral
func (s *ReferralService) Submit(ctx context.Context, referral *models.Referral) (*models.SubmissionOutcome, error) {
	ctx, span := tracing.StartSpan(ctx, "referral.submit",
		attribute.String("referral.kind", referral.Kind.String()),
		attribute.String("referral.id", referral.ID.String()))
	defer span.End()

	if s.captcha != nil && s.captcha.Enabled() {
		if err := s.captcha.Verify(ctx, referral.RecaptchaToken); err != nil {
			logger.Warn("ReCAPTCHA verification failed",
				zap.String("referral_id", referral.ID.String()),
				zap.Error(err))
			if errors.Is(err, recaptcha.ErrVerificationFailed) {
				return nil, apperrors.InvalidInputError("recaptcha", err.Error())
			}
			return nil, apperrors.UnavailableError("recaptcha", err)
		}
	}

	resumeURL, err := s.uploadResume(ctx, referral)
	if err != nil {
		return nil, err
	}

	created, err := retry.DoWithResult(ctx, retry.DatabaseConfig(s.config.Submission.MaxRetries), "insert_referral",
		func() (bool, error) {
			return s.store.Create(ctx, referral, resumeURL)
		})
	if err != nil {
		return nil, apperrors.UnavailableError("database", err)
	}

	if created {
		trigger.CallAsync(ctx, s.config.EventTriggers.ReferralCreatedTriggerURL, referral.ID.String(), s.httpClient)
	} else {
		logger.Info("Referral already stored", zap.String("idempotency_key", referral.IdempotencyKey.String()))
	}

	logger.Info("Referral submitted",
		zap.String("referral_id", referral.ID.String()),
		zap.String("type", referral.Kind.Label()),
		zap.Bool("has_resume", resumeURL != ""))

	return &models.SubmissionOutcome{
		ReferralID:  referral.ID,
		Kind:        referral.Kind,
		SubmittedAt: referral.SubmittedAt,
		ResumeURL:   resumeURL,
		Referral:    referral,
	}, nil
}

func (s *ReferralService) uploadResume(ctx context.Context, referral *models.Referral) (string, error) {
	if referral.Kind != models.ReferralKindTalent || referral.Talent == nil || referral.Talent.Resume == nil {
		return "", nil
	}
	resume := referral.Talent.Resume
	key := storage.DocumentKey(referral.ID.String(), referral.Talent.Name, resume.FileName, referral.SubmittedAt)

	retryCfg := retry.StorageConfig(s.config.Submission.MaxRetries)
	retryCfg.RetryableErrors = func(err error) bool {
		return !circuitbreaker.IsOpen(err) && retry.IsRetryable(err)
	}

	url, err := retry.DoWithResult(ctx, retryCfg, "upload_resume", func() (string, error) {
		return circuitbreaker.Execute(s.breaker, func() (string, error) {
			return s.documents.UploadDocument(ctx, key, resume.Data, resume.ContentType, resume.FileName)
		})
	})
	if err != nil {
		return "", apperrors.UnavailableError("storage", fmt.Errorf("upload %s: %w", key, err))
	}
	return url, nil
}
