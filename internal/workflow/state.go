package workflow

// State is the lifecycle position of one form
type State int

const (
	// StateEditing accepts input; it is both the initial state and the one re-entered after reset
	StateEditing State = iota
	// StateSubmitting means the referral has been handed to the Submitter
	StateSubmitting
	// StateSucceeded shows the confirmation until the dwell timer fires
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "editing"
	}
}
