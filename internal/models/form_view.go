package models

// AttachmentView describes the accepted resume without its content
type AttachmentView struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// FormView is a read-only snapshot of one form, rendered as HTML or JSON
type FormView struct {
	Kind         ReferralKind       `json:"kind"`
	State        string             `json:"state"`
	Values       ReferralForm       `json:"values"`
	Errors       map[string]string  `json:"errors,omitempty"`
	FormError    string             `json:"formError,omitempty"`
	Attachment   *AttachmentView    `json:"attachment,omitempty"`
	Outcome      *SubmissionOutcome `json:"outcome,omitempty"`
	CanSubmit    bool               `json:"canSubmit"`
	Confirmation string             `json:"confirmation,omitempty"`
}

// FieldError returns the message for field, if any
func (v FormView) FieldError(field string) string {
	return v.Errors[field]
}

// FormResponse is the JSON body of the referral API
type FormResponse struct {
	Form          FormView       `json:"form"`
	Notifications []Notification `json:"notifications"`
}

// ModeRequest switches the active form
type ModeRequest struct {
	Kind string `json:"kind" form:"tipo" binding:"required,oneof=talent company talento empresa"`
}
