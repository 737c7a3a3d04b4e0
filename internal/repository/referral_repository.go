package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/metrics"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DB is the slice of pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

const insertReferralSQL = `
INSERT INTO referrals (
    id, idempotency_key, kind, name, email, phone, phone_e164, profile_url,
    interest, observation, resume_file_name, resume_content_type, resume_size_bytes,
    resume_url, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (idempotency_key) DO NOTHING`

// ReferralRepository stores referrals in PostgreSQL
type ReferralRepository struct {
	db DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create inserts the referral. A repeated idempotency key is not an error;
// created reports whether this call stored the row.
func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral, resumeURL string) (created bool, err error) {
	start := time.Now()
	operation := "createReferral"

	args := referralArgs(referral, resumeURL)
	tag, err := r.db.Exec(ctx, insertReferralSQL, args...)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration,
			zap.String("referral_id", referral.ID.String()),
			zap.Error(err))
		return false, fmt.Errorf("failed to insert referral: %w", err)
	}

	recordMetrics(operation, "success", duration)
	created = tag.RowsAffected() > 0
	logger.LogAPICall(ctx, "postgres", operation, "success", duration,
		zap.String("referral_id", referral.ID.String()),
		zap.String("kind", referral.Kind.String()),
		zap.Bool("created", created))

	return created, nil
}

// Ping checks the database is reachable
func (r *ReferralRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func referralArgs(referral *models.Referral, resumeURL string) []any {
	var (
		name, email, phone, e164, profileURL, interest, observation string
		fileName, contentType                                         *string
		size                                                          *int64
	)

	switch {
	case referral.Kind == models.ReferralKindCompany && referral.Company != nil:
		c := referral.Company
		name, email, phone, e164 = c.CompanyName, c.Email, c.Phone, c.PhoneE164
		profileURL, interest, observation = c.Website, c.Interest, c.Observation
	case referral.Talent != nil:
		t := referral.Talent
		name, email, phone, e164 = t.Name, t.Email, t.Phone, t.PhoneE164
		profileURL, interest, observation = t.LinkedIn, t.Interest, t.Observation
		if t.Resume != nil {
			fileName = &t.Resume.FileName
			contentType = &t.Resume.ContentType
			size = &t.Resume.Size
		}
	}

	return []any{
		referral.ID,
		referral.IdempotencyKey,
		referral.Kind.String(),
		name,
		email,
		phone,
		nullIfEmpty(e164),
		nullIfEmpty(profileURL),
		nullIfEmpty(interest),
		nullIfEmpty(observation),
		fileName,
		contentType,
		size,
		nullIfEmpty(resumeURL),
		referral.SubmittedAt,
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}
