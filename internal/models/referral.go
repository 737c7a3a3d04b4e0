package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReferralKind selects which referral schema applies
type ReferralKind int

const (
	ReferralKindTalent ReferralKind = iota
	ReferralKindCompany
)

// ParseReferralKind accepts the English and Portuguese names
func ParseReferralKind(value string) (ReferralKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "talent", "talento":
		return ReferralKindTalent, nil
	case "company", "empresa":
		return ReferralKindCompany, nil
	default:
		return 0, fmt.Errorf("unknown referral kind %q", value)
	}
}

func (k ReferralKind) String() string {
	if k == ReferralKindCompany {
		return "company"
	}
	return "talent"
}

// Label is the Portuguese name used in logs and notifications
func (k ReferralKind) Label() string {
	if k == ReferralKindCompany {
		return "empresa"
	}
	return "talento"
}

// MarshalText implements encoding.TextMarshaler
func (k ReferralKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ReferralKind) UnmarshalText(text []byte) error {
	parsed, err := ParseReferralKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ReferralForm holds the raw values typed by the visitor.
// Both kinds share one struct; fields that do not apply to a kind are ignored.
type ReferralForm struct {
	Name           string `json:"name" form:"name"`
	CompanyName    string `json:"companyName" form:"companyName"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	LinkedIn       string `json:"linkedin" form:"linkedin"`
	Website        string `json:"website" form:"website"`
	Interest       string `json:"interest" form:"interest"`
	Observation    string `json:"observation" form:"observation"`
	RecaptchaToken string `json:"recaptchaToken" form:"g-recaptcha-response"`
}

// TalentReferral is a validated talent referral
type TalentReferral struct {
	Name        string
	Email       string
	Phone       string
	PhoneE164   string
	LinkedIn    string
	Interest    string
	Observation string
	Resume      *Attachment
}

// CompanyReferral is a validated company referral
type CompanyReferral struct {
	CompanyName string
	Email       string
	Phone       string
	PhoneE164   string
	Website     string
	Interest    string
	Observation string
}

// Attachment is a file chosen for the talent form
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte `json:"-"`
}

// Referral is built fresh for each submission attempt
type Referral struct {
	ID             uuid.UUID
	IdempotencyKey uuid.UUID
	Kind           ReferralKind
	Talent         *TalentReferral
	Company        *CompanyReferral
	RecaptchaToken string
	SubmittedAt    time.Time
}

// DisplayName is the talent or company name
func (r *Referral) DisplayName() string {
	if r.Kind == ReferralKindCompany && r.Company != nil {
		return r.Company.CompanyName
	}
	if r.Talent != nil {
		return r.Talent.Name
	}
	return ""
}

// Email returns the contact email of either kind
func (r *Referral) Email() string {
	if r.Kind == ReferralKindCompany && r.Company != nil {
		return r.Company.Email
	}
	if r.Talent != nil {
		return r.Talent.Email
	}
	return ""
}

// SubmissionOutcome is what a backend returns for an accepted referral.
// Referral is the validated payload that was delivered.
type SubmissionOutcome struct {
	ReferralID  uuid.UUID    `json:"referralId"`
	Kind        ReferralKind `json:"kind"`
	SubmittedAt time.Time    `json:"submittedAt"`
	ResumeURL   string       `json:"-"`
	Referral    *Referral    `json:"-"`
}

// Notification is a toast shown after a successful submission
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
