package user

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

// NewMemoryRepository builds an in-memory user store. It enforces the same
// email and phone uniqueness and the same name ordering as the Postgres
// repository, so tests and dev mode exercise identical semantics.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[int64]User), nextID: 1}
}

func (r *memoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, &Error{Kind: KindConflict, Field: "email", Message: MsgEmailTaken}
		}
		if existing.Phone == u.Phone {
			return User{}, &Error{Kind: KindConflict, Field: "phone", Message: MsgPhoneTaken}
		}
	}

	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

func (r *memoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
