package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"user_hub/internal/common"
	"user_hub/internal/common/security"
	"user_hub/internal/domain/model"
	"user_hub/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserService owns account lifecycle: registration, administrative CRUD,
// self-service profile updates and professional status.
type UserService struct {
	userRepo repository.UserRepository
	emails   EmailSender
	validate *validator.Validate
}

func NewUserService(userRepo repository.UserRepository, emails EmailSender) *UserService {
	return &UserService{
		userRepo: userRepo,
		emails:   emails,
		validate: validator.New(),
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"omitempty,min=3"`
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Nickname string     `json:"nickname" validate:"omitempty,min=3"`
	Role     model.Role `json:"role"`
}

type UpdateUserRequest struct {
	Nickname           *string     `json:"nickname,omitempty"`
	Email              *string     `json:"email,omitempty"`
	Password           *string     `json:"password,omitempty"`
	Role               *model.Role `json:"role,omitempty"`
	EmailVerified      *bool       `json:"email_verified,omitempty"`
	IsLocked           *bool       `json:"is_locked,omitempty"`
	FirstName          *string     `json:"first_name,omitempty"`
	LastName           *string     `json:"last_name,omitempty"`
	Bio                *string     `json:"bio,omitempty"`
	ProfilePictureURL  *string     `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string     `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string     `json:"github_profile_url,omitempty"`
}

// ProfileUpdateRequest is the field set a user may change on their own
// account. Role, verification and lock state are administrative only.
type ProfileUpdateRequest struct {
	Nickname           *string `json:"nickname,omitempty"`
	Email              *string `json:"email,omitempty"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty"`
}

type UserPage struct {
	Items []*model.User `json:"items"`
	Total int           `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// Register creates an unverified account and queues a verification email.
// Duplicate email and nickname collapse into one message here so callers
// cannot probe which field collided.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.Errorf("invalid registration payload: %w", common.ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	nickname := strings.TrimSpace(req.Nickname)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailOrNicknameExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if nickname == "" {
		generated, err := s.generateUniqueNickname(ctx)
		if err != nil {
			return nil, err
		}
		nickname = generated
	} else {
		if _, err := s.userRepo.FindByNickname(ctx, nickname); err == nil {
			return nil, common.ErrEmailOrNicknameExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:                uuid.NewString(),
		Nickname:          nickname,
		Email:             email,
		HashedPassword:    hashedPassword,
		Role:              model.RoleAnonymous,
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailExists) || errors.Is(err, common.ErrNicknameExists) {
			return nil, common.ErrEmailOrNicknameExists
		}
		return nil, err
	}

	s.emails.SendVerificationEmail(ctx, user)
	user.HashedPassword = ""
	return user, nil
}

// Create is the administrative variant: accounts come out verified and
// with the requested role.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.Errorf("invalid user payload: %w", common.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = model.RoleAuthenticated
	}
	if !role.Valid() {
		return nil, common.Errorf("unknown role %q: %w", req.Role, common.ErrBadRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		generated, err := s.generateUniqueNickname(ctx)
		if err != nil {
			return nil, err
		}
		nickname = generated
	} else {
		if _, err := s.userRepo.FindByNickname(ctx, nickname); err == nil {
			return nil, common.ErrNicknameExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Nickname:       nickname,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		EmailVerified:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// Update applies an administrative partial update. Unset fields are left
// untouched; uniqueness is re-checked against all other accounts.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.validate.Var(email, "required,email"); err != nil {
			return nil, common.Errorf("invalid email: %w", common.ErrValidation)
		}
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Nickname != nil {
		nickname := strings.TrimSpace(*req.Nickname)
		if err := s.ensureNicknameFree(ctx, nickname, user.ID); err != nil {
			return nil, err
		}
		user.Nickname = nickname
	}
	if req.Password != nil {
		if err := s.validate.Var(*req.Password, "required,min=8"); err != nil {
			return nil, common.Errorf("invalid password: %w", common.ErrValidation)
		}
		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, common.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, common.Errorf("unknown role %q: %w", *req.Role, common.ErrBadRequest)
		}
		user.Role = *req.Role
	}
	if req.EmailVerified != nil {
		user.EmailVerified = *req.EmailVerified
	}
	if req.IsLocked != nil {
		user.IsLocked = *req.IsLocked
		if !user.IsLocked {
			// Administrative unlock also clears the failure counter.
			user.FailedLoginAttempts = 0
		}
	}
	applyProfileFields(user, req.FirstName, req.LastName, req.Bio, req.ProfilePictureURL, req.LinkedinProfileURL, req.GithubProfileURL)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UpdateProfile is the self-service subset of Update, keyed by the
// caller's own identity from the token.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.validate.Var(email, "required,email"); err != nil {
			return nil, common.Errorf("invalid email: %w", common.ErrValidation)
		}
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Nickname != nil {
		nickname := strings.TrimSpace(*req.Nickname)
		if err := s.ensureNicknameFree(ctx, nickname, user.ID); err != nil {
			return nil, err
		}
		user.Nickname = nickname
	}
	applyProfileFields(user, req.FirstName, req.LastName, req.Bio, req.ProfilePictureURL, req.LinkedinProfileURL, req.GithubProfileURL)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// List validates the pagination bounds before touching the store, naming
// the violated bound.
func (s *UserService) List(ctx context.Context, skip, limit int) (*UserPage, error) {
	if skip < 0 {
		return nil, common.ErrSkipNegative
	}
	if limit < 1 {
		return nil, common.ErrLimitTooSmall
	}

	users, total, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.HashedPassword = ""
	}
	return &UserPage{Items: users, Total: total, Skip: skip, Limit: limit}, nil
}

// SetProfessional toggles professional status and queues a notification
// email. The email is fire-and-forget.
func (s *UserService) SetProfessional(ctx context.Context, id string, status bool) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user.IsProfessional = status
	user.ProfessionalAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.emails.SendProfessionalStatusEmail(ctx, user)
	user.HashedPassword = ""
	return user, nil
}

// VerifyEmail consumes the verification token mailed at registration and
// upgrades an anonymous account to authenticated.
func (s *UserService) VerifyEmail(ctx context.Context, userID, token string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		user.HashedPassword = ""
		return user, nil
	}
	if token == "" || token != user.VerificationToken {
		return nil, common.Errorf("invalid verification token: %w", common.ErrBadRequest)
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	if user.Role == model.RoleAnonymous {
		user.Role = model.RoleAuthenticated
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return common.ErrEmailExists
	}
	return nil
}

func (s *UserService) ensureNicknameFree(ctx context.Context, nickname, selfID string) error {
	existing, err := s.userRepo.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return common.ErrNicknameExists
	}
	return nil
}

func (s *UserService) generateUniqueNickname(ctx context.Context) (string, error) {
	for i := 0; i < 10; i++ {
		nickname := common.GenerateNickname()
		_, err := s.userRepo.FindByNickname(ctx, nickname)
		if errors.Is(err, common.ErrNotFound) {
			return nickname, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", common.Errorf("could not generate a free nickname: %w", common.ErrInternalServer)
}

func applyProfileFields(user *model.User, firstName, lastName, bio, pictureURL, linkedinURL, githubURL *string) {
	if firstName != nil {
		user.FirstName = firstName
	}
	if lastName != nil {
		user.LastName = lastName
	}
	if bio != nil {
		user.Bio = bio
	}
	if pictureURL != nil {
		user.ProfilePictureURL = pictureURL
	}
	if linkedinURL != nil {
		user.LinkedinProfileURL = linkedinURL
	}
	if githubURL != nil {
		user.GithubProfileURL = githubURL
	}
}
