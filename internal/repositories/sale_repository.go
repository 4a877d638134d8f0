package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"dulceria_pos_backend/internal/models"

	"github.com/lib/pq"
)

// SaleRepository defines the interface for the sale ledger and its read-only
// reporting queries. All writes take an SQLExecutor so the service layer can
// group the header insert, detail inserts and stock decrements into one
// transaction.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	CreateSaleDetail(executor SQLExecutor, detail *models.SaleDetail) (int64, error)
	GetSaleByID(saleID int64) (*models.Sale, error)
	GetSaleDetailRows(saleID int64) ([]models.SaleDetailRow, error)
	GetSalesOfDay(date string) ([]models.DailySaleRow, error)
	GetSalesByEmployee(date string) ([]models.EmployeeSalesRow, error)
	GetTotalSales(date string) (float64, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (date, total, employee_id)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, sale.Date, sale.Total, sale.EmployeeID).Scan(&sale.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: creating sale (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) CreateSaleDetail(executor SQLExecutor, detail *models.SaleDetail) (int64, error) {
	query := `INSERT INTO sale_details (sale_id, product_id, quantity, unit_price)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, detail.SaleID, detail.ProductID, detail.Quantity, detail.UnitPrice).Scan(&detail.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: creating sale detail (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating sale detail: %v", ErrDatabaseError, err)
	}
	return detail.ID, nil
}

func (r *saleRepository) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT s.id, to_char(s.date, 'YYYY-MM-DD'), s.total, s.employee_id, e.name
	          FROM sales s
	          JOIN employees e ON s.employee_id = e.id
	          WHERE s.id = $1`
	err := r.db.QueryRow(query, saleID).Scan(&sale.ID, &sale.Date, &sale.Total, &sale.EmployeeID, &sale.EmployeeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return sale, nil
}

// GetSaleDetailRows returns the line items of one sale with the per-line
// subtotal computed in SQL.
func (r *saleRepository) GetSaleDetailRows(saleID int64) ([]models.SaleDetailRow, error) {
	details := []models.SaleDetailRow{}
	query := `SELECT p.name, p.brand, sd.quantity, sd.unit_price, (sd.quantity * sd.unit_price) AS subtotal
	          FROM sale_details sd
	          JOIN products p ON sd.product_id = p.id
	          WHERE sd.sale_id = $1
	          ORDER BY sd.id`
	rows, err := r.db.Query(query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sale details for sale ID %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.SaleDetailRow
		if err := rows.Scan(&d.ProductName, &d.Brand, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("%w: scanning sale detail for sale ID %d: %v", ErrDatabaseError, saleID, err)
		}
		details = append(details, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale detail rows for sale ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return details, nil
}

func (r *saleRepository) GetSalesOfDay(date string) ([]models.DailySaleRow, error) {
	sales := []models.DailySaleRow{}
	query := `SELECT s.id, s.total, e.name
	          FROM sales s
	          JOIN employees e ON s.employee_id = e.id
	          WHERE s.date = $1
	          ORDER BY s.id`
	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales of day %s: %v", ErrDatabaseError, date, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.DailySaleRow
		if err := rows.Scan(&s.SaleID, &s.Total, &s.EmployeeName); err != nil {
			return nil, fmt.Errorf("%w: scanning daily sale row: %v", ErrDatabaseError, err)
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily sale rows: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) GetSalesByEmployee(date string) ([]models.EmployeeSalesRow, error) {
	report := []models.EmployeeSalesRow{}
	query := `SELECT e.name, SUM(s.total) AS total_sales
	          FROM sales s
	          JOIN employees e ON s.employee_id = e.id
	          WHERE s.date = $1
	          GROUP BY s.employee_id, e.name
	          ORDER BY total_sales DESC`
	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales by employee for %s: %v", ErrDatabaseError, date, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.EmployeeSalesRow
		if err := rows.Scan(&row.EmployeeName, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("%w: scanning employee sales row: %v", ErrDatabaseError, err)
		}
		report = append(report, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee sales rows: %v", ErrDatabaseError, err)
	}
	return report, nil
}

// GetTotalSales returns the day's revenue, 0 when no sales were recorded.
func (r *saleRepository) GetTotalSales(date string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(total), 0) FROM sales WHERE date = $1`
	if err := r.db.QueryRow(query, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: querying total sales for %s: %v", ErrDatabaseError, date, err)
	}
	return total, nil
}
