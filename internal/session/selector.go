package session

import (
	"sync"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/artium/indicacoes-api/pkg/metrics"
)

// WorkflowFactory builds a fresh workflow that reports to notifier
type WorkflowFactory func(kind models.ReferralKind, notifier workflow.Notifier) *workflow.Workflow

// maxToasts bounds the queue of a visitor who never reads it
const maxToasts = 10

// Selector holds the active referral kind and the one workflow that serves it.
// It is also the workflow's Notifier: toasts queue here until the next render.
type Selector struct {
	factory WorkflowFactory

	mu     sync.Mutex
	active *workflow.Workflow
	toasts []models.Notification
	closed bool
}

// NewSelector starts on the talent form
func NewSelector(factory WorkflowFactory) *Selector {
	s := &Selector{factory: factory}
	s.active = factory(models.ReferralKindTalent, s)
	return s
}

// Active returns the kind currently shown
func (s *Selector) Active() models.ReferralKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Kind()
}

// Workflow returns the workflow of the active form
func (s *Selector) Workflow() *workflow.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// WorkflowFor returns the active workflow only when it serves kind
func (s *Selector) WorkflowFor(kind models.ReferralKind) (*workflow.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active.Kind() != kind {
		return nil, false
	}
	return s.active, true
}

// Switch shows kind. Choosing another kind discards the current form
// entirely; nothing carries over to the new one. Returns whether it changed.
func (s *Selector) Switch(kind models.ReferralKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.active.Kind() == kind {
		return false
	}

	s.active.Close()
	s.active = s.factory(kind, s)
	metrics.ModeSwitches.WithLabelValues(kind.String()).Inc()
	return true
}

// Notify queues a toast for the visitor
func (s *Selector) Notify(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.toasts = append(s.toasts, n)
	if len(s.toasts) > maxToasts {
		s.toasts = s.toasts[len(s.toasts)-maxToasts:]
	}
}

// DrainToasts returns and clears the queued toasts
func (s *Selector) DrainToasts() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	toasts := s.toasts
	s.toasts = nil
	if toasts == nil {
		return []models.Notification{}
	}
	return toasts
}

// Close discards the active workflow
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.active.Close()
}
