package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/artium/indicacoes-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedSubmitter_WaitsAndSucceeds(t *testing.T) {
	submitter := services.NewSimulatedSubmitter(30 * time.Millisecond)
	referral := talentReferral()

	start := time.Now()
	outcome, err := submitter.Submit(context.Background(), referral)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, referral.ID, outcome.ReferralID)
	assert.Equal(t, referral.Kind, outcome.Kind)
	assert.Empty(t, outcome.ResumeURL)
	assert.Same(t, referral, outcome.Referral)
}

func TestSimulatedSubmitter_CompanyWithoutLatency(t *testing.T) {
	outcome, err := services.NewSimulatedSubmitter(0).Submit(context.Background(), companyReferral())

	require.NoError(t, err)
	assert.NotNil(t, outcome)
}
