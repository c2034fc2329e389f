package worker

import (
	"testing"

	"user_hub/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmail(t *testing.T) {
	verification := &model.EmailJob{
		Kind:            model.EmailVerification,
		Nickname:        "user1",
		VerificationURL: "http://localhost:8080/verify-email/abc/tok",
	}
	subject, body := renderEmail(verification)
	assert.Equal(t, "Verify your email", subject)
	assert.Contains(t, body, "user1")
	assert.Contains(t, body, verification.VerificationURL)

	subject, body = renderEmail(&model.EmailJob{Kind: model.EmailAccountLocked, Nickname: "user1"})
	assert.Equal(t, "Your account has been locked", subject)
	assert.Contains(t, body, "failed login attempts")

	subject, body = renderEmail(&model.EmailJob{Kind: model.EmailProfessionalStatus, Nickname: "user1", IsProfessional: true})
	assert.Equal(t, "Professional status updated", subject)
	assert.Contains(t, body, "granted")

	_, body = renderEmail(&model.EmailJob{Kind: model.EmailProfessionalStatus, Nickname: "user1"})
	assert.Contains(t, body, "removed")
}
