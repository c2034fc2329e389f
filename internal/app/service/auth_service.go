package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"user_hub/internal/common"
	"user_hub/internal/common/security"
	"user_hub/internal/domain/model"
	"user_hub/internal/domain/repository"
	"user_hub/internal/platform/config"
)

type AuthService struct {
	userRepo repository.UserRepository
	emails   EmailSender
}

func NewAuthService(userRepo repository.UserRepository, emails EmailSender) *AuthService {
	return &AuthService{userRepo: userRepo, emails: emails}
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates by email and password and returns a bearer token.
//
// Check order is fixed: existence, verified flag, lock state, then the
// password. Unknown email and wrong password share one message; locked
// accounts are refused before the password is ever compared, so lockout
// cannot be probed for credential correctness.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrIncorrectCredentials
		}
		return nil, err
	}

	if !user.EmailVerified {
		return nil, common.ErrEmailNotVerified
	}
	if user.IsLocked {
		return nil, common.ErrAccountLocked
	}

	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, s.recordFailedAttempt(ctx, user)
	}

	if user.FailedLoginAttempts > 0 {
		if err := s.userRepo.UpdateLoginState(ctx, user.ID, 0, false); err != nil {
			return nil, err
		}
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, common.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// recordFailedAttempt bumps the consecutive-failure counter and flips the
// account into the locked state once the threshold is reached. The attempt
// that trips the lock still reports incorrect credentials; only subsequent
// attempts see the locked message.
func (s *AuthService) recordFailedAttempt(ctx context.Context, user *model.User) error {
	attempts := user.FailedLoginAttempts + 1
	locked := attempts >= config.AppConfig.LockoutThreshold

	if err := s.userRepo.UpdateLoginState(ctx, user.ID, attempts, locked); err != nil {
		return err
	}
	if locked && !user.IsLocked {
		log.Printf("Account %s locked after %d failed login attempts", user.ID, attempts)
		s.emails.SendAccountLockedEmail(ctx, user)
	}
	return common.ErrIncorrectCredentials
}
