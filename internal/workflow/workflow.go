package workflow

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/validation"
	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDwell is how long the confirmation stays before the form resets
const DefaultDwell = 3 * time.Second

// Submitter delivers a validated referral to a backend
type Submitter interface {
	Submit(ctx context.Context, referral *models.Referral) (*models.SubmissionOutcome, error)
}

// Notifier receives the toast of a successful submission
type Notifier interface {
	Notify(n models.Notification)
}

// Options tune a Workflow; zero values fall back to defaults
type Options struct {
	Dwell        time.Duration
	Organization string
	Now          func() time.Time
	NewID        func() uuid.UUID
}

// Workflow drives one form through Editing, Submitting and Succeeded
type Workflow struct {
	kind      models.ReferralKind
	submitter Submitter
	notifier  Notifier
	opts      Options

	mu         sync.Mutex
	state      State
	values     models.ReferralForm
	errors     validation.FieldErrors
	formError  string
	attachment *models.Attachment
	outcome    *models.SubmissionOutcome
	resetTimer *time.Timer
	generation uint64
	closed     bool
}

// New creates a workflow in the Editing state
func New(kind models.ReferralKind, submitter Submitter, notifier Notifier, opts Options) *Workflow {
	if opts.Dwell <= 0 {
		opts.Dwell = DefaultDwell
	}
	if opts.Organization == "" {
		opts.Organization = "Artium Soluções"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}

	return &Workflow{
		kind:      kind,
		submitter: submitter,
		notifier:  notifier,
		opts:      opts,
		state:     StateEditing,
	}
}

// Kind returns the referral kind this workflow collects
func (w *Workflow) Kind() models.ReferralKind {
	return w.kind
}

// State returns the current state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectAttachment judges a newly chosen resume. The previous file and its
// error are dropped before the new one is checked.
func (w *Workflow) SelectAttachment(att models.Attachment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	if w.kind != models.ReferralKindTalent {
		return ErrAttachmentNotAccepted
	}

	w.attachment = nil
	delete(w.errors, "resume")

	if err := validation.ValidateAttachment(att); err != nil {
		if w.errors == nil {
			w.errors = validation.FieldErrors{}
		}
		w.errors["resume"] = validation.AttachmentMessage(err)
		metrics.AttachmentRejections.WithLabelValues(validation.AttachmentReason(err)).Inc()
		return err
	}

	w.attachment = &att
	return nil
}

// Submit validates form and, when everything passes, hands a fresh Referral
// to the Submitter. The call is detached from ctx cancellation: once
// Submitting begins it runs to completion.
func (w *Workflow) Submit(ctx context.Context, form models.ReferralForm) (*models.SubmissionOutcome, error) {
	w.mu.Lock()

	switch {
	case w.closed:
		w.mu.Unlock()
		return nil, ErrClosed
	case w.state == StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	case w.state == StateSucceeded:
		w.mu.Unlock()
		return nil, ErrAwaitingReset
	}

	token := form.RecaptchaToken
	form.RecaptchaToken = ""
	w.values = form
	w.formError = ""

	referral, fieldErrs := w.buildReferralLocked(form)
	if len(fieldErrs) > 0 {
		w.errors = fieldErrs
		w.mu.Unlock()
		metrics.ReferralSubmissions.WithLabelValues(w.kind.String(), "invalid").Inc()
		return nil, &ValidationError{Fields: maps.Clone(fieldErrs)}
	}

	referral.RecaptchaToken = token
	w.errors = nil
	w.state = StateSubmitting
	w.mu.Unlock()

	start := time.Now()
	outcome, err := w.submitter.Submit(context.WithoutCancel(ctx), referral)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.ReferralSubmissions.WithLabelValues(w.kind.String(), "failure").Inc()
		metrics.ReferralSubmissionDuration.WithLabelValues(w.kind.String(), "failure").Observe(duration)
		logger.Warn("Referral submission failed",
			zap.String("referral_id", referral.ID.String()),
			zap.String("kind", w.kind.String()),
			zap.Error(err))

		w.mu.Lock()
		w.state = StateEditing
		w.formError = SubmissionFailedMessage
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if outcome == nil {
		outcome = &models.SubmissionOutcome{ReferralID: referral.ID, Kind: w.kind, SubmittedAt: referral.SubmittedAt}
	}
	if outcome.Referral == nil {
		outcome.Referral = referral
	}

	metrics.ReferralSubmissions.WithLabelValues(w.kind.String(), "success").Inc()
	metrics.ReferralSubmissionDuration.WithLabelValues(w.kind.String(), "success").Observe(duration)

	w.mu.Lock()
	w.state = StateSucceeded
	w.outcome = outcome
	if !w.closed {
		w.scheduleResetLocked()
	}
	w.mu.Unlock()

	if w.notifier != nil {
		w.notifier.Notify(NotificationFor(w.kind))
	}

	return outcome, nil
}

// buildReferralLocked runs the schema and, for talents, the resume requirement
func (w *Workflow) buildReferralLocked(form models.ReferralForm) (*models.Referral, validation.FieldErrors) {
	referral := &models.Referral{
		ID:             w.opts.NewID(),
		IdempotencyKey: w.opts.NewID(),
		Kind:           w.kind,
		SubmittedAt:    w.opts.Now(),
	}

	if w.kind == models.ReferralKindCompany {
		company, errs := validation.ValidateCompany(form)
		referral.Company = company
		return referral, errs
	}

	talent, errs := validation.ValidateTalent(form)
	if w.attachment == nil {
		if errs == nil {
			errs = validation.FieldErrors{}
		}
		// keep the rejection message of a refused file instead of "missing"
		if msg, ok := w.errors["resume"]; ok {
			errs["resume"] = msg
		} else {
			errs["resume"] = validation.MissingResumeMessage
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	att := *w.attachment
	talent.Resume = &att
	referral.Talent = talent
	return referral, nil
}

func (w *Workflow) editableLocked() error {
	switch {
	case w.closed:
		return ErrClosed
	case w.state != StateEditing:
		return ErrNotEditing
	default:
		return nil
	}
}

func (w *Workflow) scheduleResetLocked() {
	gen := w.generation
	w.resetTimer = time.AfterFunc(w.opts.Dwell, func() {
		w.reset(gen)
	})
}

// reset returns to a blank Editing form unless something moved on since gen
func (w *Workflow) reset(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.generation != gen || w.state != StateSucceeded {
		return
	}

	w.generation++
	w.state = StateEditing
	w.values = models.ReferralForm{}
	w.errors = nil
	w.formError = ""
	w.attachment = nil
	w.outcome = nil
	w.resetTimer = nil
}

// Close discards the form; a pending reset never fires
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	w.generation++
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

// Snapshot returns a copy of everything a renderer needs
func (w *Workflow) Snapshot() models.FormView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := models.FormView{
		Kind:      w.kind,
		State:     w.state.String(),
		Values:    w.values,
		Errors:    maps.Clone(w.errors),
		FormError: w.formError,
		CanSubmit: w.state == StateEditing && !w.closed,
	}
	if w.attachment != nil {
		view.Attachment = &models.AttachmentView{
			FileName:    w.attachment.FileName,
			ContentType: w.attachment.ContentType,
			Size:        w.attachment.Size,
		}
	}
	if w.outcome != nil {
		outcome := *w.outcome
		view.Outcome = &outcome
	}
	if w.state == StateSucceeded {
		view.Confirmation = ConfirmationText(w.kind, w.opts.Organization)
	}
	return view
}
