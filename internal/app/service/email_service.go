package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"user_hub/internal/domain/model"
	"user_hub/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EmailSender enqueues notification emails. Implementations must never
// fail the calling request: delivery problems are logged and swallowed.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, user *model.User)
	SendAccountLockedEmail(ctx context.Context, user *model.User)
	SendProfessionalStatusEmail(ctx context.Context, user *model.User)
}

// QueueEmailService pushes email jobs onto a Redis list consumed by the
// email worker.
type QueueEmailService struct {
	rdb *redis.Client
}

func NewQueueEmailService(rdb *redis.Client) *QueueEmailService {
	return &QueueEmailService{rdb: rdb}
}

func (s *QueueEmailService) SendVerificationEmail(ctx context.Context, user *model.User) {
	job := newEmailJob(model.EmailVerification, user)
	job.VerificationURL = config.AppConfig.AppBaseURL + "/verify-email/" + user.ID + "/" + user.VerificationToken
	s.enqueue(ctx, job)
}

func (s *QueueEmailService) SendAccountLockedEmail(ctx context.Context, user *model.User) {
	s.enqueue(ctx, newEmailJob(model.EmailAccountLocked, user))
}

func (s *QueueEmailService) SendProfessionalStatusEmail(ctx context.Context, user *model.User) {
	job := newEmailJob(model.EmailProfessionalStatus, user)
	job.IsProfessional = user.IsProfessional
	s.enqueue(ctx, job)
}

func newEmailJob(kind model.EmailKind, user *model.User) *model.EmailJob {
	return &model.EmailJob{
		ID:         uuid.NewString(),
		Kind:       kind,
		UserID:     user.ID,
		Recipient:  user.Email,
		Nickname:   user.Nickname,
		EnqueuedAt: time.Now().UTC(),
	}
}

func (s *QueueEmailService) enqueue(ctx context.Context, job *model.EmailJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("ERROR: Failed to marshal email job %s: %v", job.ID, err)
		return
	}
	if err := s.rdb.LPush(ctx, config.AppConfig.EmailQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to enqueue email job %s (%s to %s): %v", job.ID, job.Kind, job.Recipient, err)
	}
}
