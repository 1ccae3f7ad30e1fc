package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/repository"
	"github.com/trinhdvt/storefront/internal/service"
	"github.com/trinhdvt/storefront/pkg/pagination"
	"github.com/trinhdvt/storefront/pkg/validator"
)

const defaultUsersPerPage = 3

type createUserRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

type userIsActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// userPageResponse keeps the listing shape this service has always had:
// limit and order_by instead of per_page and total_pages.
type userPageResponse struct {
	Data    []model.UserDTO `json:"data"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Total   int64           `json:"total"`
	OrderBy string          `json:"order_by"`
}

type UserHandler struct {
	responder
	userSvc  service.UserService
	validate validator.Validator
}

func NewUserHandler(logger *slog.Logger, userSvc service.UserService, validate validator.Validator) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		userSvc:   userSvc,
		validate:  validate,
	}
}

func (h *UserHandler) Register(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Put("/{id}/active", h.setUserActive)
		r.Delete("/{id}", h.deleteUser)
	})
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	plan := pagination.Normalize(
		pagination.Query{Page: page, PerPage: limit, SortColumn: q.Get("order_by")},
		pagination.Options{
			DefaultPerPage:     defaultUsersPerPage,
			AllowedSortColumns: repository.UserSortColumns,
		},
	)

	result, err := h.userSvc.ListUsers(r.Context(), service.ListUsersParams{
		Plan:     plan,
		Username: q.Get("username"),
	})
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service list users: %w", err))
		return
	}

	data := make([]model.UserDTO, 0, len(result.Data))
	for _, user := range result.Data {
		data = append(data, user.DTO())
	}

	h.JSON(w, r, http.StatusOK, userPageResponse{
		Data:    data,
		Page:    result.PageNumber,
		Limit:   result.PerPage,
		Total:   result.Total,
		OrderBy: plan.SortColumn,
	})
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.userSvc.CreateUser(r.Context(), service.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service create user: %w", err))
		return
	}

	h.JSON(w, r, http.StatusCreated, user.DTO())
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service get user: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, user.DTO())
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.userSvc.UpdateUser(r.Context(), id, service.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service update user: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, user.DTO())
}

func (h *UserHandler) setUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	var req userIsActiveRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.userSvc.SetUserActive(r.Context(), id, *req.IsActive)
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service set user active: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, user.DTO())
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	user, err := h.userSvc.DeleteUser(r.Context(), id)
	if err != nil {
		h.Error(w, r, fmt.Errorf("user service delete user: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, user.DeletedDTO())
}
