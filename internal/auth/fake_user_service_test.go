package auth

import (
	"context"
	"errors"

	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserService struct {
	users map[string]*user.User
	err   error
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: make(map[string]*user.User)}
}

func (f *fakeUserService) add(id, email, password string) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := &user.User{ID: id, Email: email, PasswordHash: string(hash)}
	f.users[id] = u
	return u
}

func (f *fakeUserService) Register(ctx context.Context, email, password string) (*user.User, error) {
	return nil, errors.New("not supported")
}

func (f *fakeUserService) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}
