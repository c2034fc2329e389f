package model

import "time"

// EmailKind selects the template the mailer worker renders.
type EmailKind string

const (
	EmailVerification       EmailKind = "email_verification"
	EmailAccountLocked      EmailKind = "account_locked"
	EmailProfessionalStatus EmailKind = "professional_status"
)

// EmailJob is the unit queued to Redis for asynchronous delivery.
// Delivery is fire-and-forget from the request's point of view.
type EmailJob struct {
	ID              string    `json:"id"`
	Kind            EmailKind `json:"kind"`
	UserID          string    `json:"user_id"`
	Recipient       string    `json:"recipient"`
	Nickname        string    `json:"nickname"`
	VerificationURL string    `json:"verification_url,omitempty"`
	IsProfessional  bool      `json:"is_professional,omitempty"`
	Attempts        int       `json:"attempts"`
	EnqueuedAt      time.Time `json:"enqueued_at"`
}
