package service

import (
	"context"

	userdomain "github.com/jokehub/jokehub/internal/user/domain"
	userrepo "github.com/jokehub/jokehub/internal/user/repository"
)

type mockUserRepo struct {
	createFunc          func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc  func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc        func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	countByUsernameFunc func(ctx context.Context, username string) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	if m.countByUsernameFunc != nil {
		return m.countByUsernameFunc(ctx, username)
	}
	return 0, nil
}

type mockHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password string, digest string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Verify(password string, digest string) bool {
	if m.verifyFunc != nil {
		return m.verifyFunc(password, digest)
	}
	return digest == "hashed_"+password
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "11111111-1111-1111-1111-111111111111", nil
}
