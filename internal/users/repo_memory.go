package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryRepo returns a repo holding the given users, in order.
func NewMemoryRepo(seed ...User) *MemoryRepo {
	return &MemoryRepo{users: append([]User(nil), seed...)}
}

// SampleUsers is the fixture the backend starts with when no database is configured.
func SampleUsers() []User {
	return []User{
		{ID: 1, Name: "Justin Nguyen", Major: "Computer Science"},
		{ID: 2, Name: "Daniel Pasion", Major: "Computer Science"},
		{ID: 3, Name: "Billy Bronco", Major: "Animal Health Science"},
	}
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]User{}, r.users...), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, name, major string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user := User{
		ID:        len(r.users) + 1,
		Name:      name,
		Major:     major,
		CreatedAt: time.Now().UTC(),
	}
	r.users = append(r.users, user)
	return user, nil
}
