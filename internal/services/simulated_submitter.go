package services

import (
	"context"
	"time"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/pkg/logger"
	"go.uber.org/zap"
)

// SimulatedSubmitter accepts every referral after a fixed delay and only logs it
type SimulatedSubmitter struct {
	latency time.Duration
}

// NewSimulatedSubmitter creates a submitter that waits latency per referral
func NewSimulatedSubmitter(latency time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{latency: latency}
}

// Submit waits for the configured latency, logs the payload and succeeds
func (s *SimulatedSubmitter) Submit(ctx context.Context, referral *models.Referral) (*models.SubmissionOutcome, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	logger.Info("Referral received (simulated)", payloadFields(referral)...)

	return &models.SubmissionOutcome{
		ReferralID:  referral.ID,
		Kind:        referral.Kind,
		SubmittedAt: referral.SubmittedAt,
		Referral:    referral,
	}, nil
}

// payloadFields mirrors the submitted form; the resume is logged by file name only
func payloadFields(referral *models.Referral) []zap.Field {
	fields := []zap.Field{
		zap.String("referral_id", referral.ID.String()),
		zap.String("type", referral.Kind.Label()),
	}

	switch {
	case referral.Kind == models.ReferralKindCompany && referral.Company != nil:
		c := referral.Company
		fields = append(fields,
			zap.String("companyName", c.CompanyName),
			zap.String("email", c.Email),
			zap.String("phone", c.Phone),
			zap.String("website", c.Website),
			zap.String("interest", c.Interest),
			zap.String("observation", c.Observation))
	case referral.Talent != nil:
		t := referral.Talent
		fields = append(fields,
			zap.String("name", t.Name),
			zap.String("email", t.Email),
			zap.String("phone", t.Phone),
			zap.String("linkedin", t.LinkedIn),
			zap.String("interest", t.Interest),
			zap.String("observation", t.Observation))
		if t.Resume != nil {
			fields = append(fields, zap.String("resume", t.Resume.FileName))
		}
	}

	return fields
}
