package services

import (
	"github.com/stretchr/testify/mock"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(executor repositories.SQLExecutor, product *models.Product) (int64, error) {
	args := m.Called(executor, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id int64) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	args := m.Called(barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(executor repositories.SQLExecutor, product *models.Product) error {
	args := m.Called(executor, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(executor repositories.SQLExecutor, id int64) (bool, error) {
	args := m.Called(executor, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(executor repositories.SQLExecutor, productID int64, quantity int) error {
	args := m.Called(executor, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) GetInventory() ([]models.InventoryRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryRow), args.Error(1)
}

// MockSaleRepository is a mock implementation of repositories.SaleRepository.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSale(executor repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	args := m.Called(executor, sale)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) CreateSaleDetail(executor repositories.SQLExecutor, detail *models.SaleDetail) (int64, error) {
	args := m.Called(executor, detail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) GetSaleByID(saleID int64) (*models.Sale, error) {
	args := m.Called(saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleRepository) GetSaleDetailRows(saleID int64) ([]models.SaleDetailRow, error) {
	args := m.Called(saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleDetailRow), args.Error(1)
}

func (m *MockSaleRepository) GetSalesOfDay(date string) ([]models.DailySaleRow, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailySaleRow), args.Error(1)
}

func (m *MockSaleRepository) GetSalesByEmployee(date string) ([]models.EmployeeSalesRow, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EmployeeSalesRow), args.Error(1)
}

func (m *MockSaleRepository) GetTotalSales(date string) (float64, error) {
	args := m.Called(date)
	return args.Get(0).(float64), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of repositories.EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(executor repositories.SQLExecutor, employee *models.Employee, passwordHash string) (int64, error) {
	args := m.Called(executor, employee, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(code string) (*models.Employee, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByID(id int64) (*models.Employee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}
