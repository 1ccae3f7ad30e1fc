package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/storage/db"
)

// ProductSortColumns is the allow-list of columns a product listing may be
// ordered by.
var ProductSortColumns = []string{"id", "name", "price", "created_at", "updated_at"}

type CreateProductParams struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateProductParams is a sparse patch: nil fields keep the stored value.
// UpdatedAt is always written.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	UpdatedAt   time.Time
}

type ListProductsParams struct {
	Limit  int
	Offset int
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, image_url, created_at, updated_at"

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := numericFromFloat(params.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, image_url, created_at, updated_at)
		VALUES (@id, @name, @description, @price, @image_url, @created_at, @updated_at)
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":          params.ID,
			"name":        params.Name,
			"description": params.Description,
			"price":       price,
			"image_url":   params.ImageURL,
			"created_at":  params.CreatedAt,
			"updated_at":  params.UpdatedAt,
		})

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("create product: %w", err))
	}

	return product, nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = @id`,
		pgx.NamedArgs{"id": id})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ErrProductNotFound.WrapParent(err)
		}
		return model.Product{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("get product: %w", err))
	}

	return product, nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	// Newest first, id as tiebreak so the order is deterministic.
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC, id
		LIMIT @limit
		OFFSET @offset`,
		pgx.NamedArgs{
			"limit":  params.Limit,
			"offset": params.Offset,
		})
	if err != nil {
		return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("list products: %w", err))
	}
	defer rows.Close()

	products := make([]model.Product, 0, params.Limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("scan product: %w", err))
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("iterate products: %w", err))
	}

	return products, nil
}

func (r productRepository) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("count products: %w", err))
	}

	return total, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	var price *pgtype.Numeric
	if params.Price != nil {
		n, err := numericFromFloat(*params.Price)
		if err != nil {
			return model.Product{}, fmt.Errorf("convert price: %w", err)
		}
		price = &n
	}

	// Single atomic statement: COALESCE keeps stored values for absent
	// fields and avoids a read-modify-write race. updated_at comes from the
	// caller's clock, the same one that stamps creates.
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET
			name        = COALESCE(@name, name),
			description = COALESCE(@description, description),
			price       = COALESCE(@price, price),
			image_url   = COALESCE(@image_url, image_url),
			updated_at  = @updated_at
		WHERE id = @id
		RETURNING `+productColumns,
		pgx.NamedArgs{
			"id":          id,
			"name":        params.Name,
			"description": params.Description,
			"price":       price,
			"image_url":   params.ImageURL,
			"updated_at":  params.UpdatedAt,
		})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ErrProductNotFound.WrapParent(err)
		}
		return model.Product{}, apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("update product: %w", err))
	}

	return product, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return apperr.ErrDatabaseFailure.WrapParent(fmt.Errorf("delete product: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return apperr.ErrProductNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   pgtype.Numeric
	)
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&price,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	priceValue, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	product.Price = priceValue.Float64

	return product, nil
}

func numericFromFloat(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%.2f", v)); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}
