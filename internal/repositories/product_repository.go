package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"dulceria_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for catalog database operations.
type ProductRepository interface {
	Create(executor SQLExecutor, product *models.Product) (int64, error)
	GetAll() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	GetByBarcode(barcode string) (*models.Product, error)
	Update(executor SQLExecutor, product *models.Product) error
	Delete(executor SQLExecutor, id int64) (bool, error)
	DecrementStock(executor SQLExecutor, productID int64, quantity int) error
	GetInventory() ([]models.InventoryRow, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, brand, price, quantity, category, barcode)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		product.Name, product.Brand, product.Price, product.Quantity, product.Category, product.Barcode,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: product barcode already exists (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT id, name, brand, price, quantity, category, barcode FROM products ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var barcode sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.Category, &barcode); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if barcode.Valid {
			code := barcode.String
			p.Barcode = &code
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	query := `SELECT id, name, brand, price, quantity, category, barcode FROM products WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id), fmt.Sprintf("ID %d", id))
}

func (r *productRepository) GetByBarcode(barcode string) (*models.Product, error) {
	query := `SELECT id, name, brand, price, quantity, category, barcode FROM products WHERE barcode = $1`
	return r.scanOne(r.db.QueryRow(query, barcode), fmt.Sprintf("barcode %s", barcode))
}

func (r *productRepository) scanOne(row *sql.Row, desc string) (*models.Product, error) {
	p := &models.Product{}
	var barcode sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.Category, &barcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by %s: %v", ErrDatabaseError, desc, err)
	}
	if barcode.Valid {
		code := barcode.String
		p.Barcode = &code
	}
	return p, nil
}

func (r *productRepository) Update(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	          SET name = $1, brand = $2, price = $3, quantity = $4, category = $5, barcode = $6
	          WHERE id = $7`
	result, err := executor.Exec(query,
		product.Name, product.Brand, product.Price, product.Quantity, product.Category, product.Barcode,
		product.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: product barcode already exists (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product by id. A missing row is not an error: the boolean
// reports whether anything was actually deleted.
func (r *productRepository) Delete(executor SQLExecutor, id int64) (bool, error) {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return false, fmt.Errorf("%w: product ID %d is referenced by recorded sales (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return false, fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: getting rows affected for deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	return rowsAffected > 0, nil
}

// DecrementStock subtracts quantity from a product's stock inside the checkout
// transaction. The update is guarded so stock can never go below zero; a sale
// that would oversell is rejected with ErrInsufficientStock.
func (r *productRepository) DecrementStock(executor SQLExecutor, productID int64, quantity int) error {
	query := `UPDATE products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`
	result, err := executor.Exec(query, quantity, productID)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for stock decrement of product ID %d: %v", ErrDatabaseError, productID, err)
	}
	if rowsAffected == 0 {
		// The probe runs on the same executor so it sees the transaction's
		// own view of the row.
		var exists bool
		if err := executor.QueryRow(`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
			return fmt.Errorf("%w: checking product ID %d after zero-row stock decrement: %v", ErrDatabaseError, productID, err)
		}
		if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: product ID %d", ErrInsufficientStock, productID)
	}
	return nil
}

func (r *productRepository) GetInventory() ([]models.InventoryRow, error) {
	inventory := []models.InventoryRow{}
	query := `SELECT id, name, brand, quantity, price, category FROM products ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.InventoryRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Brand, &row.Quantity, &row.Price, &row.Category); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory row: %v", ErrDatabaseError, err)
		}
		inventory = append(inventory, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory rows: %v", ErrDatabaseError, err)
	}
	return inventory, nil
}
