package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type mockRepository struct {
	mu          sync.Mutex
	users       map[string]*User
	err         error
	raceOnEmail string
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) createUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if user.Email == m.raceOnEmail {
		return ErrEmailAlreadyExists
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockRepository) getUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) getUserByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	return &found, nil
}
