package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trinhdvt/storefront/internal/apperr"
	httpx "github.com/trinhdvt/storefront/internal/http"
	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/service"
	"github.com/trinhdvt/storefront/pkg/pagination"
	"github.com/trinhdvt/storefront/pkg/ptr"
	"github.com/trinhdvt/storefront/pkg/validator"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, params service.CreateUserParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, params service.ListUsersParams) (pagination.Page[model.User], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(pagination.Page[model.User]), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uuid.UUID, params service.UpdateUserParams) (model.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) (model.User, error) {
	args := m.Called(ctx, id, isActive)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func newUserRouter(svc service.UserService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	httpx.NewUserHandler(logger, svc, validator.NewDefaultValidator()).Register(r)
	return r
}

func alice() model.User {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}
}

func TestCreateUser(t *testing.T) {
	t.Run("Should create user and hide the password hash", func(t *testing.T) {
		mockSvc := new(MockUserService)
		user := alice()
		mockSvc.On("CreateUser", mock.Anything, service.CreateUserParams{
			Username:     "alice",
			Email:        "alice@example.com",
			Role:         "admin",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		}).Return(user, nil).Once()

		body := bytes.NewBufferString(`{
			"username": "alice",
			"email": "alice@example.com",
			"role": "admin",
			"password_hash": "$2a$10$abcdefghijklmnopqrstuv"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.NotContains(t, resp.Body.String(), "password")
		assert.NotContains(t, resp.Body.String(), "$2a$10$")

		var dto model.UserDTO
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, user.ID, dto.ID)
		assert.True(t, dto.IsActive)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Should reject a malformed email with 422", func(t *testing.T) {
		mockSvc := new(MockUserService)

		body := bytes.NewBufferString(`{
			"username": "alice",
			"email": "not-an-email",
			"role": "admin",
			"password_hash": "x"
		}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Contains(t, resp.Body.String(), "REQUEST_PAYLOAD_NOT_VALID")
		assert.Contains(t, resp.Body.String(), "must be a valid email address")
		mockSvc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Should reject missing fields with 422", func(t *testing.T) {
		mockSvc := new(MockUserService)

		body := bytes.NewBufferString(`{"username":"alice"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Should return user by id", func(t *testing.T) {
		mockSvc := new(MockUserService)
		user := alice()
		mockSvc.On("GetUser", mock.Anything, user.ID).Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/"+user.ID.String(), nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotContains(t, resp.Body.String(), "password")

		var dto model.UserDTO
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, "alice", dto.Username)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Should return 404 for unknown id", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("GetUser", mock.Anything, mock.Anything).
			Return(model.User{}, apperr.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), "USER_NOT_FOUND")
	})

	t.Run("Should return 422 for malformed id", func(t *testing.T) {
		mockSvc := new(MockUserService)

		req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		mockSvc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Should pass the normalized plan and filter to the service", func(t *testing.T) {
		mockSvc := new(MockUserService)
		plan := pagination.Plan{Page: 2, PerPage: 5, SortColumn: "username"}
		page := pagination.NewPage(plan, 12, []model.User{alice()})
		mockSvc.On("ListUsers", mock.Anything, service.ListUsersParams{
			Plan:     plan,
			Username: "ali",
		}).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?page=2&limit=5&order_by=username&username=ali", nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var decoded struct {
			Data    []json.RawMessage `json:"data"`
			Page    int               `json:"page"`
			Limit   int               `json:"limit"`
			Total   int64             `json:"total"`
			OrderBy string            `json:"order_by"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
		assert.Equal(t, 2, decoded.Page)
		assert.Equal(t, 5, decoded.Limit)
		assert.Equal(t, int64(12), decoded.Total)
		assert.Equal(t, "username", decoded.OrderBy)
		assert.Len(t, decoded.Data, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Should fall back to sorting by id for an unknown column", func(t *testing.T) {
		mockSvc := new(MockUserService)
		plan := pagination.Plan{Page: 1, PerPage: 3, SortColumn: "id"}
		mockSvc.On("ListUsers", mock.Anything, service.ListUsersParams{Plan: plan}).
			Return(pagination.NewPage(plan, 0, []model.User{}), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?order_by=password_hash", nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"order_by":"id"`)
		assert.Contains(t, resp.Body.String(), `"data":[]`)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Should pass only supplied fields to the service", func(t *testing.T) {
		mockSvc := new(MockUserService)
		user := alice()
		user.Email = "alice@corp.example.com"

		mockSvc.On("UpdateUser", mock.Anything, user.ID, service.UpdateUserParams{
			Email: ptr.New("alice@corp.example.com"),
		}).Return(user, nil).Once()

		body := bytes.NewBufferString(`{"email":"alice@corp.example.com"}`)
		req := httptest.NewRequest(http.MethodPut, "/users/"+user.ID.String(), body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var dto model.UserDTO
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, "alice@corp.example.com", dto.Email)
		assert.Equal(t, "alice", dto.Username)
		mockSvc.AssertExpectations(t)
	})
}

func TestSetUserActive(t *testing.T) {
	t.Run("Should deactivate user", func(t *testing.T) {
		mockSvc := new(MockUserService)
		user := alice()
		user.IsActive = false
		mockSvc.On("SetUserActive", mock.Anything, user.ID, false).Return(user, nil).Once()

		body := bytes.NewBufferString(`{"is_active":false}`)
		req := httptest.NewRequest(http.MethodPut, "/users/"+user.ID.String()+"/active", body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var dto model.UserDTO
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.False(t, dto.IsActive)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Should reject a body without is_active", func(t *testing.T) {
		mockSvc := new(MockUserService)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPut, "/users/"+uuid.NewString()+"/active", body)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		mockSvc.AssertNotCalled(t, "SetUserActive", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Should return the removed user's identity", func(t *testing.T) {
		mockSvc := new(MockUserService)
		user := alice()
		mockSvc.On("DeleteUser", mock.Anything, user.ID).Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/users/"+user.ID.String(), nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)

		var dto model.DeletedUserDTO
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dto))
		assert.Equal(t, user.ID, dto.ID)
		assert.Equal(t, "alice", dto.Username)
		assert.Equal(t, "alice@example.com", dto.Email)
		assert.NotContains(t, resp.Body.String(), "is_active")
		mockSvc.AssertExpectations(t)
	})

	t.Run("Should return 404 for unknown id", func(t *testing.T) {
		mockSvc := new(MockUserService)
		mockSvc.On("DeleteUser", mock.Anything, mock.Anything).
			Return(model.User{}, apperr.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
