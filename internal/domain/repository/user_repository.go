package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"user_hub/internal/common"
	"user_hub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByNickname(ctx context.Context, nickname string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, skip, limit int) ([]*model.User, int, error)
	UpdateLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, nickname, email, hashed_password, role, email_verified, verification_token,
	is_locked, failed_login_attempts, is_professional, professional_status_updated_at,
	first_name, last_name, bio, profile_picture_url, linkedin_profile_url, github_profile_url,
	created_at, updated_at`

// duplicateFieldError translates a unique-constraint violation into the
// field-specific duplicate error. The unique indexes are the authoritative
// guard; service-level pre-checks only exist for friendlier messages.
func duplicateFieldError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return common.ErrEmailExists
		}
		if strings.Contains(pgErr.ConstraintName, "nickname") {
			return common.ErrNicknameExists
		}
		return common.ErrEmailOrNicknameExists
	}
	return nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, nickname, email, hashed_password, role, email_verified, verification_token,
	              is_locked, failed_login_attempts, is_professional, professional_status_updated_at,
	              first_name, last_name, bio, profile_picture_url, linkedin_profile_url, github_profile_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Nickname, user.Email, user.HashedPassword, user.Role, user.EmailVerified, user.VerificationToken,
		user.IsLocked, user.FailedLoginAttempts, user.IsProfessional, user.ProfessionalAt,
		user.FirstName, user.LastName, user.Bio, user.ProfilePictureURL, user.LinkedinProfileURL, user.GithubProfileURL,
	)
	if err != nil {
		if dupErr := duplicateFieldError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

func (r *pgUserRepository) FindByNickname(ctx context.Context, nickname string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE nickname = $1`
	return r.queryOne(ctx, query, nickname)
}

func (r *pgUserRepository) queryOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, arg), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.queryOne: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET nickname = $2, email = $3, hashed_password = $4, role = $5,
	              email_verified = $6, verification_token = $7, is_locked = $8, failed_login_attempts = $9,
	              is_professional = $10, professional_status_updated_at = $11,
	              first_name = $12, last_name = $13, bio = $14,
	              profile_picture_url = $15, linkedin_profile_url = $16, github_profile_url = $17,
	              updated_at = now()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Nickname, user.Email, user.HashedPassword, user.Role,
		user.EmailVerified, user.VerificationToken, user.IsLocked, user.FailedLoginAttempts,
		user.IsProfessional, user.ProfessionalAt, user.FirstName, user.LastName, user.Bio,
		user.ProfilePictureURL, user.LinkedinProfileURL, user.GithubProfileURL,
	)
	if err != nil {
		if dupErr := duplicateFieldError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) List(ctx context.Context, skip, limit int) ([]*model.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List count: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user := &model.User{}
		if err := scanUser(rows, user); err != nil {
			return nil, 0, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List rows: %w", err)
	}
	return users, total, nil
}

// UpdateLoginState writes only the lockout fields so concurrent profile
// updates cannot clobber the counter.
func (r *pgUserRepository) UpdateLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error {
	query := `UPDATE users SET failed_login_attempts = $2, is_locked = $3, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, failedAttempts, locked)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLoginState: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLoginState: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner, user *model.User) error {
	return row.Scan(
		&user.ID, &user.Nickname, &user.Email, &user.HashedPassword, &user.Role,
		&user.EmailVerified, &user.VerificationToken, &user.IsLocked, &user.FailedLoginAttempts,
		&user.IsProfessional, &user.ProfessionalAt, &user.FirstName, &user.LastName, &user.Bio,
		&user.ProfilePictureURL, &user.LinkedinProfileURL, &user.GithubProfileURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
}
