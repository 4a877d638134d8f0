package services

import (
	"fmt"
	"strconv"
	"time"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
	"dulceria_pos_backend/pkg/utils"
)

// --- ReportService Interface ---
// All report operations are scoped to "today" (server-local calendar day),
// matching how the shop closes its register.
type ReportService interface {
	SalesByEmployeeToday() ([]models.EmployeeSalesRow, error)
	TotalSalesToday() (float64, error)
	InventorySnapshot() ([]models.InventoryRow, error)
	DailySummary() (*models.DailySummary, error)
	SalesOfDayTable() (*models.TableDocument, error)
	InventoryTable() (*models.TableDocument, error)
}

type reportService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	now         func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(saleRepo repositories.SaleRepository, productRepo repositories.ProductRepository) ReportService {
	return &reportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func (s *reportService) today() string {
	return s.now().Format(SaleDateLayout)
}

func (s *reportService) SalesByEmployeeToday() ([]models.EmployeeSalesRow, error) {
	report, err := s.saleRepo.GetSalesByEmployee(s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by employee: %w", err)
	}
	return report, nil
}

// TotalSalesToday returns today's revenue, 0 when no sales were recorded.
func (s *reportService) TotalSalesToday() (float64, error) {
	total, err := s.saleRepo.GetTotalSales(s.today())
	if err != nil {
		return 0, fmt.Errorf("failed to get total sales: %w", err)
	}
	return total, nil
}

func (s *reportService) InventorySnapshot() ([]models.InventoryRow, error) {
	inventory, err := s.productRepo.GetInventory()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory snapshot: %w", err)
	}
	return inventory, nil
}

// DailySummary builds the end-of-day cash-cut: sales grouped by employee,
// the day's total and the current stock snapshot.
func (s *reportService) DailySummary() (*models.DailySummary, error) {
	byEmployee, err := s.SalesByEmployeeToday()
	if err != nil {
		return nil, err
	}
	total, err := s.TotalSalesToday()
	if err != nil {
		return nil, err
	}
	inventory, err := s.InventorySnapshot()
	if err != nil {
		return nil, err
	}
	return &models.DailySummary{
		SalesByEmployee: byEmployee,
		TotalSales:      total,
		Inventory:       inventory,
	}, nil
}

// SalesOfDayTable builds the tabular export of today's sales: a header row
// plus one stringified row per sale.
func (s *reportService) SalesOfDayTable() (*models.TableDocument, error) {
	sales, err := s.saleRepo.GetSalesOfDay(s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to build sales export: %w", err)
	}

	doc := &models.TableDocument{
		Header: []string{"ID Venta", "Total", "Empleado"},
		Rows:   make([][]string, 0, len(sales)),
	}
	for _, sale := range sales {
		doc.Rows = append(doc.Rows, []string{
			utils.Int64ToStr(sale.SaleID),
			formatMoney(sale.Total),
			sale.EmployeeName,
		})
	}
	return doc, nil
}

// InventoryTable builds the tabular export of the current stock snapshot.
func (s *reportService) InventoryTable() (*models.TableDocument, error) {
	inventory, err := s.productRepo.GetInventory()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory export: %w", err)
	}

	doc := &models.TableDocument{
		Header: []string{"ID", "Producto", "Marca", "Cantidad", "Precio", "Categoría"},
		Rows:   make([][]string, 0, len(inventory)),
	}
	for _, row := range inventory {
		doc.Rows = append(doc.Rows, []string{
			utils.Int64ToStr(row.ProductID),
			row.Name,
			row.Brand,
			strconv.Itoa(row.Quantity),
			formatMoney(row.Price),
			row.Category,
		})
	}
	return doc, nil
}

func formatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
