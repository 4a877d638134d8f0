package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
	"dulceria_pos_backend/pkg/utils"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("product barcode already registered")
)

// CreateProductRequest is used for creating a new product.
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category" binding:"required"`
	Barcode  *string `json:"barcode,omitempty"`
}

// UpdateProductRequest is used for replacing a product's fields by id.
type UpdateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category" binding:"required"`
	Barcode  *string `json:"barcode,omitempty"`
}

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req CreateProductRequest) (*models.Product, error)
	GetProducts() ([]models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProductByBarcode(barcode string) (*models.Product, error)
	UpdateProduct(id int64, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(id int64) (bool, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(productRepo repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: productRepo, db: db}
}

func validateProductFields(name, brand, category string, price float64, quantity int) error {
	if utils.IsEmpty(name) {
		return fmt.Errorf("%w: product name cannot be empty", ErrValidation)
	}
	if utils.IsEmpty(brand) {
		return fmt.Errorf("%w: product brand cannot be empty", ErrValidation)
	}
	if utils.IsEmpty(category) {
		return fmt.Errorf("%w: product category cannot be empty", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

// normalizeBarcode treats empty and whitespace-only barcodes as absent so the
// unique constraint only applies to real codes.
func normalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *productService) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.Brand, req.Category, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:     req.Name,
		Brand:    req.Brand,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
		Barcode:  normalizeBarcode(req.Barcode),
	}

	if _, err := s.productRepo.Create(s.db, &product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateBarcode, err)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) GetProducts() ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByBarcode(barcode string) (*models.Product, error) {
	product, err := s.productRepo.GetByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(id int64, req UpdateProductRequest) (*models.Product, error) {
	if err := validateProductFields(req.Name, req.Brand, req.Category, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:       id,
		Name:     req.Name,
		Brand:    req.Brand,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
		Barcode:  normalizeBarcode(req.Barcode),
	}

	if err := s.productRepo.Update(s.db, &product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateBarcode, err)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product. A missing id is a no-op: the boolean
// reports whether a row was actually deleted.
func (s *productService) DeleteProduct(id int64) (bool, error) {
	deleted, err := s.productRepo.Delete(s.db, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return deleted, nil
}
