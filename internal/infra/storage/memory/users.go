package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[user.ID]user.User
	byEmail map[string]user.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[user.ID]user.User),
		byEmail: make(map[string]user.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	u := r.byID[id]
	out := u
	return &out, nil
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if u == nil || u.ID == "" {
		return user.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byID[u.ID]; ok && !strings.EqualFold(prev.Email, u.Email) {
		delete(r.byEmail, normalizeEmail(prev.Email))
	}
	r.byID[u.ID] = *u
	r.byEmail[normalizeEmail(u.Email)] = u.ID
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ user.Repository = (*UserRepository)(nil)
