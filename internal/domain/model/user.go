package model

import (
	"time"
)

// Role is the closed set of account roles. Authorization matches on these
// exhaustively; unknown values are denied everywhere.
type Role string

const (
	RoleAnonymous     Role = "ANONYMOUS" // registered but email not yet verified
	RoleAuthenticated Role = "AUTHENTICATED"
	RoleManager       Role = "MANAGER"
	RoleAdmin         Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                  string     `json:"id"`
	Nickname            string     `json:"nickname"`
	Email               string     `json:"email"`
	HashedPassword      string     `json:"-"` // Not exposed
	Role                Role       `json:"role"`
	EmailVerified       bool       `json:"email_verified"`
	VerificationToken   string     `json:"-"`
	IsLocked            bool       `json:"is_locked"`
	FailedLoginAttempts int        `json:"-"`
	IsProfessional      bool       `json:"is_professional"`
	ProfessionalAt      *time.Time `json:"professional_status_updated_at"`
	FirstName           *string    `json:"first_name"`
	LastName            *string    `json:"last_name"`
	Bio                 *string    `json:"bio"`
	ProfilePictureURL   *string    `json:"profile_picture_url"`
	LinkedinProfileURL  *string    `json:"linkedin_profile_url"`
	GithubProfileURL    *string    `json:"github_profile_url"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
