package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Emails are matched
// case-insensitively.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byLogin map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]User),
		byLogin: make(map[string]string),
	}
}

func loginKeys(u *User) []string {
	var keys []string
	if u.Email != "" {
		keys = append(keys, strings.ToLower(u.Email))
	}
	if u.Phone != "" {
		keys = append(keys, u.Phone)
	}
	return keys
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := loginKeys(user)
	for _, k := range keys {
		if _, ok := r.byLogin[k]; ok {
			return nil, common.ErrorAlreadyExists
		}
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	r.byID[u.ID] = u
	for _, k := range keys {
		r.byLogin[k] = u.ID
	}

	return &u, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getLocked(id)
}

// GetUserByLogin finds a user by email or phone.
func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[login]
	if !ok {
		id, ok = r.byLogin[strings.ToLower(login)]
	}
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.getLocked(id)
}

func (r *MemoryRepository) getLocked(id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// Update replaces the stored user with the same ID. Email and phone are not
// re-indexed; the server never changes them.
func (r *MemoryRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return common.ErrorNotFound
	}
	r.byID[user.ID] = *user
	return nil
}
