package services

import (
	"context"
	"testing"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, not the password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).
			Return(&model.User{ID: 1, Username: "imran", Role: model.RoleUser}, nil)

		_, err := service.Register(ctx, model.UserRegisterRequest{
			Username: "imran",
			Password: "correct-horse",
			Email:    "imran@example.com",
		})
		require.NoError(t, err)

		stored := repo.Calls[0].Arguments.Get(1).(*model.User)
		assert.NotEqual(t, "correct-horse", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
		assert.Equal(t, model.RoleUser, stored.Role)
	})

	t.Run("short password", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository))

		_, err := service.Register(ctx, model.UserRegisterRequest{
			Username: "imran",
			Password: "short",
			Email:    "imran@example.com",
		})
		assert.Error(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).
			Return(nil, repository.ErrDuplicateUsername)

		_, err := service.Register(ctx, model.UserRegisterRequest{
			Username: "imran",
			Password: "correct-horse",
			Email:    "imran@example.com",
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 1, Username: "imran", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo)

		repo.On("GetByUsername", ctx, "imran").Return(stored, nil)

		u, err := service.Authenticate(ctx, "imran", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo)

		repo.On("GetByUsername", ctx, "imran").Return(stored, nil)

		_, err := service.Authenticate(ctx, "imran", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo)

		repo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

		_, err := service.Authenticate(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
