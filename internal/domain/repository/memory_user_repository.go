package repository

import (
	"context"
	"sync"
	"time"

	"user_hub/internal/common"
	"user_hub/internal/domain/model"
)

// memoryUserRepository is an in-memory UserRepository with the same
// uniqueness semantics as the Postgres implementation. It backs the test
// suites; nothing about it is safe for durable use.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
	order []string
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*model.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return common.ErrEmailExists
		}
		if existing.Nickname == user.Nickname {
			return common.ErrNicknameExists
		}
	}

	stored := *user
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) FindByNickname(ctx context.Context, nickname string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Nickname == nickname {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	for id, other := range r.users {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return common.ErrEmailExists
		}
		if other.Nickname == user.Nickname {
			return common.ErrNicknameExists
		}
	}

	updated := *user
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = &updated
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryUserRepository) List(ctx context.Context, skip, limit int) ([]*model.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.order)
	users := []*model.User{}
	for i := skip; i < total && len(users) < limit; i++ {
		copied := *r.users[r.order[i]]
		users = append(users, &copied)
	}
	return users, total, nil
}

func (r *memoryUserRepository) UpdateLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.FailedLoginAttempts = failedAttempts
	user.IsLocked = locked
	user.UpdatedAt = time.Now().UTC()
	return nil
}
