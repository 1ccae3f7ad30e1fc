package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trinhdvt/storefront/internal/model"
	"github.com/trinhdvt/storefront/internal/service"
	"github.com/trinhdvt/storefront/pkg/pagination"
	"github.com/trinhdvt/storefront/pkg/validator"
)

const defaultProductsPerPage = 10

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}

type productPageResponse struct {
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	Total      int64              `json:"total"`
	TotalPages int64              `json:"total_pages"`
	Data       []model.ProductDTO `json:"data"`
}

type ProductHandler struct {
	responder
	productSvc service.ProductService
	validate   validator.Validator
}

func NewProductHandler(logger *slog.Logger, productSvc service.ProductService, validate validator.Validator) *ProductHandler {
	return &ProductHandler{
		responder:  responder{logger: logger},
		productSvc: productSvc,
		validate:   validate,
	}
}

func (h *ProductHandler) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		h.Error(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.Error(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.JSON(w, r, http.StatusCreated, product.DTO())
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	plan := pagination.Normalize(
		pagination.Query{Page: page, PerPage: perPage},
		pagination.Options{DefaultPerPage: defaultProductsPerPage},
	)

	result, err := h.productSvc.ListProducts(r.Context(), plan)
	if err != nil {
		h.Error(w, r, fmt.Errorf("product service list products: %w", err))
		return
	}

	data := make([]model.ProductDTO, 0, len(result.Data))
	for _, product := range result.Data {
		data = append(data, product.DTO())
	}

	h.JSON(w, r, http.StatusOK, productPageResponse{
		Page:       result.PageNumber,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Data:       data,
	})
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		h.Error(w, r, fmt.Errorf("product service get product: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, product.DTO())
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		h.Error(w, r, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.Error(w, r, fmt.Errorf("product service update product: %w", err))
		return
	}

	h.JSON(w, r, http.StatusOK, product.DTO())
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.Error(w, r, fmt.Errorf("product service delete product: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
