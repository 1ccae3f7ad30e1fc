package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/repository"
	"github.com/trinhdvt/storefront/pkg/pagination"
)

type CreateUserParams struct {
	Username     string
	Email        string
	Role         string
	PasswordHash string
}

type UpdateUserParams struct {
	Username *string
	Email    *string
	Role     *string
	IsActive *bool
}

type ListUsersParams struct {
	Plan pagination.Plan
	// Username filters by substring match when non-empty.
	Username string
}

type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context, params ListUsersParams) (pagination.Page[model.User], error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.User{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		ID:           id,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params ListUsersParams) (pagination.Page[model.User], error) {
	users, err := s.userRepo.ListUsers(ctx, repository.ListUsersParams{
		Username: params.Username,
		Limit:    params.Plan.PerPage,
		Offset:   params.Plan.Offset(),
		OrderBy:  params.Plan.SortColumn,
	})
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("user repository list users: %w", err)
	}

	total, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("user repository count users: %w", err)
	}

	return pagination.NewPage(params.Plan, total, users), nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error) {
	user, err := s.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		Username:  params.Username,
		Email:     params.Email,
		Role:      params.Role,
		IsActive:  params.IsActive,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("user repository update user: %w", err)
	}

	return user, nil
}

func (s *userService) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) (model.User, error) {
	user, err := s.userRepo.SetUserActive(ctx, id, repository.SetUserActiveParams{
		IsActive:  isActive,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("user repository set user active: %w", err)
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository delete user: %w", err)
	}

	return user, nil
}
