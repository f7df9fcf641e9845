package repository

import (
	"context"
	"sync"

	"friendbook/internal/common"
	"friendbook/internal/domain/model"
)

type FriendRepository interface {
	List(ctx context.Context) (map[string]model.Friend, int)
	Get(ctx context.Context, email string) (model.Friend, error)
	Create(ctx context.Context, friend model.Friend) (model.Friend, error)
	Update(ctx context.Context, email string, update model.FriendUpdate) (model.Friend, []string, error)
	Delete(ctx context.Context, email string) (model.Friend, int, error)
}

// memoryFriendRepository is a mutex-guarded map keyed by email. Every
// read-modify-write holds the write lock so mutations on the same key
// are atomic with respect to each other.
type memoryFriendRepository struct {
	mu      sync.RWMutex
	friends map[string]model.Friend
}

func NewMemoryFriendRepository() FriendRepository {
	return &memoryFriendRepository{friends: make(map[string]model.Friend)}
}

func (r *memoryFriendRepository) List(ctx context.Context) (map[string]model.Friend, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]model.Friend, len(r.friends))
	for email, friend := range r.friends {
		snapshot[email] = friend
	}
	return snapshot, len(snapshot)
}

func (r *memoryFriendRepository) Get(ctx context.Context, email string) (model.Friend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	friend, ok := r.friends[email]
	if !ok {
		return model.Friend{}, common.Errorf("friend %q: %w", email, common.ErrNotFound)
	}
	return friend, nil
}

func (r *memoryFriendRepository) Create(ctx context.Context, friend model.Friend) (model.Friend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.friends[friend.Email]; ok {
		return model.Friend{}, common.Errorf("friend %q already exists: %w", friend.Email, common.ErrConflict)
	}
	r.friends[friend.Email] = friend
	return friend, nil
}

// Update applies "changed" semantics: a field is written and reported
// only when the incoming value differs from the stored one. Fields are
// checked in the fixed order firstName, lastName, dob.
func (r *memoryFriendRepository) Update(ctx context.Context, email string, update model.FriendUpdate) (model.Friend, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	friend, ok := r.friends[email]
	if !ok {
		return model.Friend{}, nil, common.Errorf("friend %q: %w", email, common.ErrNotFound)
	}

	changed := []string{}
	if update.FirstName != nil && *update.FirstName != friend.FirstName {
		friend.FirstName = *update.FirstName
		changed = append(changed, model.FieldFirstName)
	}
	if update.LastName != nil && *update.LastName != friend.LastName {
		friend.LastName = *update.LastName
		changed = append(changed, model.FieldLastName)
	}
	if update.DOB != nil && *update.DOB != friend.DOB {
		friend.DOB = *update.DOB
		changed = append(changed, model.FieldDOB)
	}

	r.friends[email] = friend
	return friend, changed, nil
}

func (r *memoryFriendRepository) Delete(ctx context.Context, email string) (model.Friend, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	friend, ok := r.friends[email]
	if !ok {
		return model.Friend{}, 0, common.Errorf("friend %q: %w", email, common.ErrNotFound)
	}
	delete(r.friends, email)
	return friend, len(r.friends), nil
}
