package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) UpdateFullName(id uint, fullName string) error {
	args := m.Called(id, fullName)
	return args.Error(0)
}

type MockOAuthAccountRepo struct {
	mock.Mock
}

func (m *MockOAuthAccountRepo) Create(account *entity.OAuthAccount) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockOAuthAccountRepo) GetByProviderUserID(provider, providerUserID string) (*entity.OAuthAccount, error) {
	args := m.Called(provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OAuthAccount), args.Error(1)
}

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(feedback *entity.Feedback) error {
	args := m.Called(feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepo) List(limit, offset int) ([]entity.Feedback, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackRepo) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Create(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)
	return args.Bool(0), args.Error(1)
}

// fakeAtomic passes the given repositories straight through, so tests can
// exercise transactional code without a database.
type fakeAtomic struct {
	users repository.UserRepository
	links repository.OAuthAccountRepository
}

func (f *fakeAtomic) Transact(fn func(users repository.UserRepository, links repository.OAuthAccountRepository) error) error {
	return fn(f.users, f.links)
}
