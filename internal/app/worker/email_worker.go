package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"user_hub/internal/domain/model"
	"user_hub/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// EmailWorker drains the email queue and delivers each job to the mailer
// HTTP endpoint. Requests that enqueue email never wait on delivery.
type EmailWorker struct {
	rdb        *redis.Client
	httpClient *http.Client
}

func NewEmailWorker(rdb *redis.Client) *EmailWorker {
	return &EmailWorker{
		rdb:        rdb,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// MailerRequest is the format sent to the external mailer service.
type MailerRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (w *EmailWorker) Start(ctx context.Context) {
	log.Println("Email worker started, listening to queue:", config.AppConfig.EmailQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Email worker stopping...")
			return
		default:
			// Blocking pop from Redis queue
			popped, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.EmailQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.EmailQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// popped is an array: [queueName, value]
			if len(popped) < 2 || popped[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}

			var job model.EmailJob
			if err := json.Unmarshal([]byte(popped[1]), &job); err != nil {
				log.Printf("ERROR: Dropping undecodable email job: %v", err)
				continue
			}
			w.deliver(ctx, &job)
		}
	}
}

func (w *EmailWorker) deliver(ctx context.Context, job *model.EmailJob) {
	req := MailerRequest{To: job.Recipient}
	req.Subject, req.Body = renderEmail(job)

	payload, err := json.Marshal(req)
	if err != nil {
		log.Printf("ERROR: Failed to marshal mailer request for job %s: %v", job.ID, err)
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.MailerWebhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("ERROR: Failed to build mailer request for job %s: %v", job.ID, err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("ERROR: Mailer call failed for job %s: %v", job.ID, err)
		w.requeue(ctx, job)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("ERROR: Mailer returned status %d for job %s", resp.StatusCode, job.ID)
		w.requeue(ctx, job)
		return
	}
	log.Printf("Delivered %s email to %s (job %s)", job.Kind, job.Recipient, job.ID)
}

// requeue pushes a failed job back for another attempt until the attempt
// budget is spent. Delivery is best-effort; exhausted jobs are dropped.
func (w *EmailWorker) requeue(ctx context.Context, job *model.EmailJob) {
	job.Attempts++
	if job.Attempts >= config.AppConfig.EmailMaxAttempts {
		log.Printf("WARN: Dropping email job %s after %d attempts", job.ID, job.Attempts)
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("ERROR: Failed to re-marshal email job %s: %v", job.ID, err)
		return
	}
	if err := w.rdb.LPush(ctx, config.AppConfig.EmailQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to requeue email job %s: %v", job.ID, err)
	}
}

func renderEmail(job *model.EmailJob) (subject, body string) {
	switch job.Kind {
	case model.EmailVerification:
		return "Verify your email",
			fmt.Sprintf("Hi %s,\n\nPlease confirm your address by visiting:\n%s\n", job.Nickname, job.VerificationURL)
	case model.EmailAccountLocked:
		return "Your account has been locked",
			fmt.Sprintf("Hi %s,\n\nYour account was locked after too many failed login attempts. Contact an administrator to unlock it.\n", job.Nickname)
	case model.EmailProfessionalStatus:
		status := "removed"
		if job.IsProfessional {
			status = "granted"
		}
		return "Professional status updated",
			fmt.Sprintf("Hi %s,\n\nYour professional status has been %s.\n", job.Nickname, status)
	default:
		return "Notification", fmt.Sprintf("Hi %s,\n", job.Nickname)
	}
}
