package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/storage/db"
	"github.com/trinhdvt/storefront/pkg/pagination"
)

// UserSortColumns is the allow-list of columns a user listing may be
// ordered by. Only values from this list are ever interpolated into SQL.
var UserSortColumns = []string{"id", "username", "email", "role", "is_active", "created_at", "updated_at"}

type CreateUserParams struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateUserParams is a sparse patch: nil fields keep the stored value.
// UpdatedAt is always written.
type UpdateUserParams struct {
	Username  *string
	Email     *string
	Role      *string
	IsActive  *bool
	UpdatedAt time.Time
}

type SetUserActiveParams struct {
	IsActive  bool
	UpdatedAt time.Time
}

type ListUsersParams struct {
	// Username filters by substring match when non-empty.
	Username string
	Limit    int
	Offset   int
	// OrderBy must come from UserSortColumns; anything else is replaced
	// with the default column.
	OrderBy string
}

type UserRepository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context, params ListUsersParams) ([]model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, params SetUserActiveParams) (model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, password_hash, role, is_active, created_at, updated_at"

func (r userRepository) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, is_active, created_at, updated_at)
		VALUES (@id, @username, @email, @password_hash, @role, @is_active, @created_at, @updated_at)
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"id":            params.ID,
			"username":      params.Username,
			"email":         params.Email,
			"password_hash": params.PasswordHash,
			"role":          params.Role,
			"is_active":     params.IsActive,
			"created_at":    params.CreatedAt,
			"updated_at":    params.UpdatedAt,
		})

	user, err := scanUser(row)
	if err != nil {
		return model.User{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("create user: %w", err))
	}

	return user, nil
}

func (r userRepository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = @id`,
		pgx.NamedArgs{"id": id})

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperr.ErrUserNotFound.WrapParent(err)
		}
		return model.User{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("get user: %w", err))
	}

	return user, nil
}

func (r userRepository) ListUsers(ctx context.Context, params ListUsersParams) ([]model.User, error) {
	orderBy := params.OrderBy
	if !slices.Contains(UserSortColumns, orderBy) {
		orderBy = pagination.DefaultSortColumn
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + userColumns + " FROM users")

	args := pgx.NamedArgs{
		"limit":  params.Limit,
		"offset": params.Offset,
	}

	if params.Username != "" {
		sb.WriteString(" WHERE username LIKE @username")
		args["username"] = "%" + params.Username + "%"
	}

	// orderBy comes from the allow-list above, never from the client.
	sb.WriteString(" ORDER BY " + orderBy)
	if orderBy != "id" {
		sb.WriteString(", id")
	}
	sb.WriteString(" LIMIT @limit OFFSET @offset")

	rows, err := r.db.Query(ctx, sb.String(), args)
	if err != nil {
		return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	users := make([]model.User, 0, params.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("scan user: %w", err))
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("iterate users: %w", err))
	}

	return users, nil
}

func (r userRepository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("count users: %w", err))
	}

	return total, nil
}

func (r userRepository) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET
			username   = COALESCE(@username, username),
			email      = COALESCE(@email, email),
			role       = COALESCE(@role, role),
			is_active  = COALESCE(@is_active, is_active),
			updated_at = @updated_at
		WHERE id = @id
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"id":         id,
			"username":   params.Username,
			"email":      params.Email,
			"role":       params.Role,
			"is_active":  params.IsActive,
			"updated_at": params.UpdatedAt,
		})

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperr.ErrUserNotFound.WrapParent(err)
		}
		return model.User{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("update user: %w", err))
	}

	return user, nil
}

func (r userRepository) SetUserActive(ctx context.Context, id uuid.UUID, params SetUserActiveParams) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET
			is_active  = @is_active,
			updated_at = @updated_at
		WHERE id = @id
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"id":         id,
			"is_active":  params.IsActive,
			"updated_at": params.UpdatedAt,
		})

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperr.ErrUserNotFound.WrapParent(err)
		}
		return model.User{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("set user active: %w", err))
	}

	return user, nil
}

func (r userRepository) DeleteUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.db.QueryRow(ctx, `
		DELETE FROM users
		WHERE id = @id
		RETURNING `+userColumns,
		pgx.NamedArgs{"id": id})

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, apperr.ErrUserNotFound.WrapParent(err)
		}
		return model.User{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("delete user: %w", err))
	}

	return user, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return model.User{}, err
	}

	return user, nil
}
