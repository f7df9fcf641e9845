package repository

import (
	"context"
	"sync"
	"time"

	"friendbook/internal/common"
	"friendbook/internal/common/security"
	"friendbook/internal/domain/model"
)

type UserRepository interface {
	Exists(ctx context.Context, username string) bool
	Authenticate(ctx context.Context, username, password string) bool
	Register(ctx context.Context, username, password string) (*model.User, error)
}

// memoryUserRepository holds registered users in insertion order. The
// comparer decides whether passwords are kept cleartext or hashed.
type memoryUserRepository struct {
	mu       sync.RWMutex
	byName   map[string]*model.User
	order    []string
	comparer security.PasswordComparer
}

func NewMemoryUserRepository(comparer security.PasswordComparer) UserRepository {
	return &memoryUserRepository{
		byName:   make(map[string]*model.User),
		comparer: comparer,
	}
}

func (r *memoryUserRepository) Exists(ctx context.Context, username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[username]
	return ok
}

func (r *memoryUserRepository) Authenticate(ctx context.Context, username, password string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byName[username]
	if !ok {
		return false
	}
	return r.comparer.Compare(user.Password, password)
}

func (r *memoryUserRepository) Register(ctx context.Context, username, password string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[username]; ok {
		return nil, common.Errorf("user %q already exists: %w", username, common.ErrConflict)
	}

	stored, err := r.comparer.Store(password)
	if err != nil {
		return nil, common.Errorf("failed to store password: %w", err)
	}

	user := &model.User{
		Username:  username,
		Password:  stored,
		CreatedAt: time.Now(),
	}
	r.byName[username] = user
	r.order = append(r.order, username)

	copied := *user
	return &copied, nil
}
