package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock for item")
)

// SaleDateLayout is the day-granularity format sales are recorded with.
// "Today" in every report means the server's local calendar day.
const SaleDateLayout = "2006-01-02"

// --- SaleService Interface ---
type SaleService interface {
	Checkout(employeeID int64) (*models.Sale, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSaleDetail(saleID int64) ([]models.SaleDetailRow, error)
	GetSalesOfToday() ([]models.DailySaleRow, error)
}

type saleService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	carts       CartService
	db          *sql.DB // For managing transactions
	now         func() time.Time
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	saleRepo repositories.SaleRepository,
	productRepo repositories.ProductRepository,
	carts CartService,
	db *sql.DB,
) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		carts:       carts,
		db:          db,
		now:         time.Now,
	}
}

// Checkout persists the employee's open cart as a sale. The header insert,
// the detail inserts and the stock decrements form one transaction: either
// the whole sale is recorded or nothing is. Detail rows keep the undiscounted
// unit price captured in the cart line; the discount only affects the header
// total. On success the open cart is discarded.
func (s *saleService) Checkout(employeeID int64) (*models.Sale, error) {
	lines, total := s.carts.Snapshot(employeeID)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: nothing to check out", ErrEmptyCart)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	sale := models.Sale{
		Date:       s.now().Format(SaleDateLayout),
		Total:      total,
		EmployeeID: employeeID,
	}
	saleID, err := s.saleRepo.CreateSale(tx, &sale)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	for _, line := range lines {
		detail := models.SaleDetail{
			SaleID:    saleID,
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		}
		if _, err := s.saleRepo.CreateSaleDetail(tx, &detail); err != nil {
			return nil, fmt.Errorf("failed to create sale detail (product_id: %d): %w", line.Product.ID, err)
		}
		if err := s.productRepo.DecrementStock(tx, line.Product.ID, line.Quantity); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return nil, fmt.Errorf("%w %s (ID: %d), requested %d",
					ErrInsufficientStock, line.Product.Name, line.Product.ID, line.Quantity)
			}
			return nil, fmt.Errorf("failed to decrement stock for product ID %d: %w", line.Product.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	s.carts.Clear(employeeID)
	return &sale, nil
}

func (s *saleService) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	return sale, nil
}

func (s *saleService) GetSaleDetail(saleID int64) ([]models.SaleDetailRow, error) {
	if _, err := s.GetSaleByID(saleID); err != nil {
		return nil, err
	}
	details, err := s.saleRepo.GetSaleDetailRows(saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale details: %w", err)
	}
	return details, nil
}

func (s *saleService) GetSalesOfToday() ([]models.DailySaleRow, error) {
	sales, err := s.saleRepo.GetSalesOfDay(s.now().Format(SaleDateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get sales of the day: %w", err)
	}
	return sales, nil
}
