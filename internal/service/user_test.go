package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/repository"
	"github.com/trinhdvt/storefront/internal/service"
	"github.com/trinhdvt/storefront/pkg/pagination"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, params repository.CreateUserParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, params repository.ListUsersParams) ([]model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, params repository.UpdateUserParams) (model.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, id uuid.UUID, params repository.SetUserActiveParams) (model.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func TestUserServiceCreateUser(t *testing.T) {
	t.Run("Should create an active user with matching timestamps", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		var captured repository.CreateUserParams
		mockRepo.On("CreateUser", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(repository.CreateUserParams)
			}).
			Return(model.User{Username: "alice"}, nil).Once()

		svc := service.NewUserService(mockRepo)
		_, err := svc.CreateUser(context.Background(), service.CreateUserParams{
			Username:     "alice",
			Email:        "alice@example.com",
			Role:         "admin",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, captured.ID)
		assert.True(t, captured.IsActive)
		assert.Equal(t, captured.CreatedAt, captured.UpdatedAt)
		assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", captured.PasswordHash)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserServiceListUsers(t *testing.T) {
	t.Run("Should forward plan and username filter to the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		users := []model.User{{Username: "alice"}}

		mockRepo.On("ListUsers", mock.Anything, repository.ListUsersParams{
			Username: "ali",
			Limit:    3,
			Offset:   3,
			OrderBy:  "username",
		}).Return(users, nil).Once()
		mockRepo.On("CountUsers", mock.Anything).Return(int64(7), nil).Once()

		svc := service.NewUserService(mockRepo)
		page, err := svc.ListUsers(context.Background(), service.ListUsersParams{
			Plan:     pagination.Plan{Page: 2, PerPage: 3, SortColumn: "username"},
			Username: "ali",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), page.Total)
		assert.Equal(t, int64(3), page.TotalPages)
		assert.Equal(t, users, page.Data)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should return an empty page rather than an error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("ListUsers", mock.Anything, mock.Anything).
			Return([]model.User{}, nil).Once()
		mockRepo.On("CountUsers", mock.Anything).Return(int64(0), nil).Once()

		svc := service.NewUserService(mockRepo)
		page, err := svc.ListUsers(context.Background(), service.ListUsersParams{
			Plan: pagination.Plan{Page: 1, PerPage: 3, SortColumn: "id"},
		})

		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(0), page.Total)
		assert.Equal(t, int64(0), page.TotalPages)
	})
}

func TestUserServiceSetUserActive(t *testing.T) {
	t.Run("Should stamp the toggle with a fresh timestamp", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		id := uuid.New()

		var captured repository.SetUserActiveParams
		mockRepo.On("SetUserActive", mock.Anything, id, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(repository.SetUserActiveParams)
			}).
			Return(model.User{}, nil).Once()

		before := time.Now().UTC()
		svc := service.NewUserService(mockRepo)
		_, err := svc.SetUserActive(context.Background(), id, false)

		require.NoError(t, err)
		assert.False(t, captured.IsActive)
		assert.False(t, captured.UpdatedAt.Before(before))
		mockRepo.AssertExpectations(t)
	})
}

func TestUserServiceDeleteUser(t *testing.T) {
	t.Run("Should return the removed user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		id := uuid.New()
		removed := model.User{ID: id, Username: "alice", Email: "alice@example.com"}
		mockRepo.On("DeleteUser", mock.Anything, id).Return(removed, nil).Once()

		svc := service.NewUserService(mockRepo)
		user, err := svc.DeleteUser(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, removed, user)
	})

	t.Run("Should propagate not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("DeleteUser", mock.Anything, mock.Anything).
			Return(model.User{}, apperr.ErrUserNotFound).Once()

		svc := service.NewUserService(mockRepo)
		_, err := svc.DeleteUser(context.Background(), uuid.New())

		assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	})
}
