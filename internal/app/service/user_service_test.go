package service

import (
	"context"
	"testing"

	"user_hub/internal/common"
	"user_hub/internal/domain/model"
	"user_hub/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *recordingEmailSender, repository.UserRepository) {
	t.Helper()
	setupTestConfig(t)
	repo := repository.NewMemoryUserRepository()
	emails := &recordingEmailSender{}
	return NewUserService(repo, emails), emails, repo
}

func TestUserService_Register(t *testing.T) {
	svc, emails, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Email:    "U@Example.com",
		Password: "MySuperPassword$1234",
		Nickname: "user1",
	})
	require.NoError(t, err)

	assert.Equal(t, "u@example.com", user.Email, "email is stored lowercased")
	assert.Equal(t, model.RoleAnonymous, user.Role)
	assert.False(t, user.EmailVerified)
	assert.Empty(t, user.HashedPassword)
	assert.Equal(t, []string{user.ID}, emails.verification)
}

func TestUserService_RegisterGeneratesNickname(t *testing.T) {
	svc, _, _ := newUserService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "u@example.com",
		Password: "MySuperPassword$1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.Nickname)
}

func TestUserService_RegisterInvalidEmail(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "notanemail",
		Password: "ValidPassword123!",
	})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUserService_RegisterShortPassword(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "u@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{
		Email:    "u@example.com",
		Password: "MySuperPassword$1234",
		Nickname: "user1",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Email:    "u@example.com",
		Password: "AnotherPassword123!",
		Nickname: "user2",
	})
	require.ErrorIs(t, err, common.ErrEmailOrNicknameExists)

	// The losing request must not leave a partial record behind.
	page, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
}

func TestUserService_RegisterDuplicateNickname(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email:    "a@example.com",
		Password: "MySuperPassword$1234",
		Nickname: "taken",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Email:    "b@example.com",
		Password: "MySuperPassword$1234",
		Nickname: "taken",
	})
	require.ErrorIs(t, err, common.ErrEmailOrNicknameExists)
}

func TestUserService_AdminCreate(t *testing.T) {
	svc, _, _ := newUserService(t)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "m@example.com",
		Password: "AnotherPassword$5678",
		Nickname: "manager1",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, user.Role)
	assert.True(t, user.EmailVerified, "administrative creation pre-verifies the account")
}

func TestUserService_AdminCreateDuplicates(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user2"})
	assert.ErrorIs(t, err, common.ErrEmailExists)

	_, err = svc.Create(ctx, CreateUserRequest{Email: "b@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	assert.ErrorIs(t, err, common.ErrNicknameExists)
}

func TestUserService_AdminCreateUnknownRole(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "a@example.com",
		Password: "AnotherPassword$5678",
		Role:     model.Role("SUPERUSER"),
	})
	require.ErrorIs(t, err, common.ErrBadRequest)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)

	github := "http://www.github.com/user1"
	updated, err := svc.Update(ctx, user.ID, UpdateUserRequest{GithubProfileURL: &github})
	require.NoError(t, err)

	assert.Equal(t, github, *updated.GithubProfileURL)
	assert.Equal(t, "a@example.com", updated.Email, "unset fields stay untouched")
	assert.Equal(t, "user1", updated.Nickname)
}

func TestUserService_UpdateDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateUserRequest{Email: "b@example.com", Password: "AnotherPassword$5678", Nickname: "user2"})
	require.NoError(t, err)

	email := "a@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateUserRequest{Email: &email})
	require.ErrorIs(t, err, common.ErrEmailExists)

	nickname := "user1"
	_, err = svc.Update(ctx, second.ID, UpdateUserRequest{Nickname: &nickname})
	require.ErrorIs(t, err, common.ErrNicknameExists)
}

func TestUserService_UpdateOwnFieldsToSameValue(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)

	// Re-submitting the account's own email and nickname is not a collision.
	email := "a@example.com"
	nickname := "user1"
	_, err = svc.Update(ctx, user.ID, UpdateUserRequest{Email: &email, Nickname: &nickname})
	require.NoError(t, err)
}

func TestUserService_UpdateUnlockResetsCounter(t *testing.T) {
	svc, _, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateLoginState(ctx, user.ID, 5, true))

	unlocked := false
	updated, err := svc.Update(ctx, user.ID, UpdateUserRequest{IsLocked: &unlocked})
	require.NoError(t, err)
	assert.False(t, updated.IsLocked)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.FailedLoginAttempts)
}

func TestUserService_UpdateNotFound(t *testing.T) {
	svc, _, _ := newUserService(t)

	nickname := "ghost"
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000000", UpdateUserRequest{Nickname: &nickname})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserService_DeleteThenGet(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = svc.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserService_ListBounds(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, -1, 10)
	require.ErrorIs(t, err, common.ErrSkipNegative)
	assert.Equal(t, "Skip integer cannot be less than 0", err.Error())

	_, err = svc.List(ctx, 0, 0)
	require.ErrorIs(t, err, common.ErrLimitTooSmall)
	assert.Equal(t, "Limit integer cannot be less than 1", err.Error())
}

func TestUserService_ListPagination(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	for _, n := range []string{"user1", "user2", "user3"} {
		_, err := svc.Create(ctx, CreateUserRequest{Email: n + "@example.com", Password: "AnotherPassword$5678", Nickname: n})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "user2", page.Items[0].Nickname)
}

func TestUserService_SetProfessional(t *testing.T) {
	svc, emails, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Email: "a@example.com", Password: "AnotherPassword$5678", Nickname: "user1"})
	require.NoError(t, err)

	updated, err := svc.SetProfessional(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsProfessional)
	require.NotNil(t, updated.ProfessionalAt)
	assert.Equal(t, []string{user.ID}, emails.professional)

	updated, err = svc.SetProfessional(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsProfessional)
}

func TestUserService_VerifyEmail(t *testing.T) {
	svc, _, repo := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Email:    "u@example.com",
		Password: "MySuperPassword$1234",
		Nickname: "user1",
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, user.ID, "wrong-token")
	require.ErrorIs(t, err, common.ErrBadRequest)

	verified, err := svc.VerifyEmail(ctx, user.ID, stored.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Equal(t, model.RoleAuthenticated, verified.Role, "verification upgrades anonymous accounts")
}
