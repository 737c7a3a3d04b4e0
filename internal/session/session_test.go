package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instantSubmitter struct{}

func (instantSubmitter) Submit(_ context.Context, r *models.Referral) (*models.SubmissionOutcome, error) {
	return &models.SubmissionOutcome{ReferralID: r.ID, Kind: r.Kind, SubmittedAt: r.SubmittedAt}, nil
}

func testFactory(kind models.ReferralKind, notifier workflow.Notifier) *workflow.Workflow {
	return workflow.New(kind, instantSubmitter{}, notifier, workflow.Options{Dwell: time.Hour})
}

func TestSelector_StartsOnTalent(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	assert.Equal(t, models.ReferralKindTalent, s.Active())
	assert.Equal(t, models.ReferralKindTalent, s.Workflow().Kind())
}

func TestSelector_SwitchDoesNotRetainValues(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	talent := s.Workflow()
	_, err := talent.Submit(context.Background(), models.ReferralForm{Name: "Ana Silva", Email: "bad"})
	require.Error(t, err)
	require.Equal(t, "Ana Silva", talent.Snapshot().Values.Name)

	assert.True(t, s.Switch(models.ReferralKindCompany))
	assert.Equal(t, models.ReferralKindCompany, s.Active())

	assert.True(t, s.Switch(models.ReferralKindTalent))
	fresh := s.Workflow()

	assert.NotSame(t, talent, fresh)
	view := fresh.Snapshot()
	assert.Empty(t, view.Values.Name)
	assert.Empty(t, view.Errors)
	assert.Equal(t, "editing", view.State)

	_, err = talent.Submit(context.Background(), models.ReferralForm{})
	assert.ErrorIs(t, err, workflow.ErrClosed)
}

func TestSelector_SwitchToSameKindIsNoop(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	before := s.Workflow()
	assert.False(t, s.Switch(models.ReferralKindTalent))
	assert.Same(t, before, s.Workflow())
}

func TestSelector_QueuesToastsFromWorkflow(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()
	s.Switch(models.ReferralKindCompany)

	_, err := s.Workflow().Submit(context.Background(), models.ReferralForm{
		CompanyName: "Acme", Email: "rh@acme.com", Phone: "11999998888",
	})
	require.NoError(t, err)

	toasts := s.DrainToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Indicação enviada com sucesso!", toasts[0].Title)
	assert.Empty(t, s.DrainToasts())
}

func TestSelector_ToastQueueIsBounded(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	for i := 0; i < maxToasts+5; i++ {
		s.Notify(models.Notification{Title: "t"})
	}
	assert.Len(t, s.DrainToasts(), maxToasts)
}

func TestSelector_WorkflowForMatchesActiveKind(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	talent, ok := s.WorkflowFor(models.ReferralKindTalent)
	require.True(t, ok)
	assert.Equal(t, models.ReferralKindTalent, talent.Kind())

	_, ok = s.WorkflowFor(models.ReferralKindCompany)
	assert.False(t, ok)

	s.Switch(models.ReferralKindCompany)

	_, ok = s.WorkflowFor(models.ReferralKindTalent)
	assert.False(t, ok)
	company, ok := s.WorkflowFor(models.ReferralKindCompany)
	require.True(t, ok)
	assert.Equal(t, models.ReferralKindCompany, company.Kind())
}

func TestSelector_WorkflowForDuringSwitches(t *testing.T) {
	s := NewSelector(testFactory)
	defer s.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.Switch(models.ReferralKindCompany)
			s.Switch(models.ReferralKindTalent)
		}
	}()

	for i := 0; i < 200; i++ {
		for _, kind := range []models.ReferralKind{models.ReferralKindTalent, models.ReferralKindCompany} {
			if wf, ok := s.WorkflowFor(kind); ok {
				assert.Equal(t, kind, wf.Kind())
			}
		}
	}
	wg.Wait()
}

func TestSelector_ClosedIgnoresSwitch(t *testing.T) {
	s := NewSelector(testFactory)
	s.Close()

	assert.False(t, s.Switch(models.ReferralKindCompany))
}

func TestStore_GetOrCreateReturnsSameSelector(t *testing.T) {
	store := NewStore(time.Minute, testFactory)
	defer store.Flush()

	a := store.GetOrCreate("session-a")
	assert.Same(t, a, store.GetOrCreate("session-a"))
	assert.NotSame(t, a, store.GetOrCreate("session-b"))
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get("session-a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_DeleteClosesSelector(t *testing.T) {
	store := NewStore(time.Minute, testFactory)

	selector := store.GetOrCreate("session-a")
	wf := selector.Workflow()
	store.Delete("session-a")

	_, ok := store.Get("session-a")
	assert.False(t, ok)
	_, err := wf.Submit(context.Background(), models.ReferralForm{})
	assert.ErrorIs(t, err, workflow.ErrClosed)
}

func TestStore_ExpiredSessionIsReplaced(t *testing.T) {
	store := NewStore(20*time.Millisecond, testFactory)
	defer store.Flush()

	first := store.GetOrCreate("session-a")
	wf := first.Workflow()
	time.Sleep(40 * time.Millisecond)

	second := store.GetOrCreate("session-a")

	assert.NotSame(t, first, second)
	_, err := wf.Submit(context.Background(), models.ReferralForm{})
	assert.ErrorIs(t, err, workflow.ErrClosed)
}
