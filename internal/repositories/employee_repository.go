package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"dulceria_pos_backend/internal/models"

	"github.com/lib/pq"
)

// EmployeeRepository defines the interface for employee directory operations.
type EmployeeRepository interface {
	Create(executor SQLExecutor, employee *models.Employee, passwordHash string) (int64, error)
	FindByCode(code string) (*models.Employee, error)
	FindByID(id int64) (*models.Employee, error)
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(executor SQLExecutor, employee *models.Employee, passwordHash string) (int64, error) {
	query := `INSERT INTO employees (name, code, password_hash)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, employee.Name, employee.Code, passwordHash).Scan(&employee.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: employee code '%s' already exists (constraint: %s)", ErrDuplicateKey, employee.Code, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee.ID, nil
}

// FindByCode retrieves an employee by their login code, including the stored
// password hash for credential checks.
func (r *employeeRepository) FindByCode(code string) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT id, name, code, password_hash FROM employees WHERE code = $1`
	err := r.db.QueryRow(query, code).Scan(&employee.ID, &employee.Name, &employee.Code, &employee.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding employee by code %s: %v", ErrDatabaseError, code, err)
	}
	return employee, nil
}

func (r *employeeRepository) FindByID(id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT id, name, code FROM employees WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&employee.ID, &employee.Name, &employee.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	return employee, nil
}
