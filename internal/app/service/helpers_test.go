package service

import (
	"context"
	"testing"
	"time"

	"user_hub/internal/common/security"
	"user_hub/internal/domain/model"
	"user_hub/internal/platform/config"

	"golang.org/x/crypto/bcrypt"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:           []byte("test-secret"),
		JWTExp:           time.Hour,
		BcryptCost:       bcrypt.MinCost,
		LockoutThreshold: 5,
		EmailQueueName:   "email_jobs_queue",
		EmailMaxAttempts: 3,
		AppBaseURL:       "http://localhost:8080",
		DefaultPageLimit: 10,
	}
	security.InitJWT()
}

// recordingEmailSender captures which notifications were queued, by user ID.
type recordingEmailSender struct {
	verification []string
	locked       []string
	professional []string
}

func (s *recordingEmailSender) SendVerificationEmail(_ context.Context, u *model.User) {
	s.verification = append(s.verification, u.ID)
}

func (s *recordingEmailSender) SendAccountLockedEmail(_ context.Context, u *model.User) {
	s.locked = append(s.locked, u.ID)
}

func (s *recordingEmailSender) SendProfessionalStatusEmail(_ context.Context, u *model.User) {
	s.professional = append(s.professional, u.ID)
}
