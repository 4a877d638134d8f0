package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 18, 30, 0, 0, time.Local)
}

// checkoutFixture wires a sale service around sqlmock for the transaction
// boundary and testify mocks for the repositories, with a cart preloaded for
// employee 7: 2 x Chocolate (10.00) + 2 x Chicles (2.50) and a 10% discount,
// so the expected total is 22.50.
func checkoutFixture(t *testing.T) (SaleService, CartService, *MockSaleRepository, *MockProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	chocolate := sampleProduct(1, "Chocolate", 10.0)
	chicles := sampleProduct(2, "Chicles", 2.5)

	productRepo := new(MockProductRepository)
	productRepo.On("GetByID", int64(1)).Return(&chocolate, nil)
	productRepo.On("GetByID", int64(2)).Return(&chicles, nil)

	carts := NewCartService(productRepo)
	for _, id := range []int64{1, 1, 2, 2} {
		_, err := carts.AddProduct(7, id)
		assert.NoError(t, err)
	}
	_, err = carts.ApplyDiscount(7, 10)
	assert.NoError(t, err)

	saleRepo := new(MockSaleRepository)
	svc := NewSaleService(saleRepo, productRepo, carts, db)
	svc.(*saleService).now = fixedClock

	return svc, carts, saleRepo, productRepo, dbMock
}

func TestCheckout_CommitsSaleAndDecrementsStock(t *testing.T) {
	svc, carts, saleRepo, productRepo, dbMock := checkoutFixture(t)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	saleRepo.On("CreateSale", mock.Anything, mock.MatchedBy(func(s *models.Sale) bool {
		return s.Date == "2024-03-15" && s.Total == 22.5 && s.EmployeeID == 7
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Sale).ID = 100
	}).Return(int64(100), nil)

	// Detail rows carry the undiscounted unit price.
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.MatchedBy(func(d *models.SaleDetail) bool {
		return d.SaleID == 100 && d.ProductID == 1 && d.Quantity == 2 && d.UnitPrice == 10.0
	})).Return(int64(1), nil)
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.MatchedBy(func(d *models.SaleDetail) bool {
		return d.SaleID == 100 && d.ProductID == 2 && d.Quantity == 2 && d.UnitPrice == 2.5
	})).Return(int64(2), nil)

	productRepo.On("DecrementStock", mock.Anything, int64(1), 2).Return(nil)
	productRepo.On("DecrementStock", mock.Anything, int64(2), 2).Return(nil)

	sale, err := svc.Checkout(7)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), sale.ID)
	assert.Equal(t, 22.5, sale.Total)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	saleRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)

	// The cart is discarded after a successful checkout.
	assert.Empty(t, carts.View(7).Lines)
}

func TestCheckout_EmptyCart(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	productRepo := new(MockProductRepository)
	saleRepo := new(MockSaleRepository)
	carts := NewCartService(productRepo)
	svc := NewSaleService(saleRepo, productRepo, carts, db)

	sale, err := svc.Checkout(7)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrEmptyCart)
	// No transaction is even started.
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCheckout_RollsBackWhenDetailInsertFails(t *testing.T) {
	svc, carts, saleRepo, productRepo, dbMock := checkoutFixture(t)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	saleRepo.On("CreateSale", mock.Anything, mock.Anything).Return(int64(100), nil)
	productRepo.On("DecrementStock", mock.Anything, int64(1), 2).Return(nil)
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.MatchedBy(func(d *models.SaleDetail) bool {
		return d.ProductID == 1
	})).Return(int64(1), nil)
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.MatchedBy(func(d *models.SaleDetail) bool {
		return d.ProductID == 2
	})).Return(int64(0), repositories.ErrDatabaseError)

	sale, err := svc.Checkout(7)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, repositories.ErrDatabaseError)
	assert.NoError(t, dbMock.ExpectationsWereMet())

	// The cart survives a failed checkout so the sale can be retried.
	assert.Len(t, carts.View(7).Lines, 2)
}

func TestCheckout_RejectsOversell(t *testing.T) {
	svc, carts, saleRepo, productRepo, dbMock := checkoutFixture(t)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	saleRepo.On("CreateSale", mock.Anything, mock.Anything).Return(int64(100), nil)
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.Anything).Return(int64(1), nil)
	productRepo.On("DecrementStock", mock.Anything, int64(1), 2).Return(repositories.ErrInsufficientStock)

	sale, err := svc.Checkout(7)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Chocolate")
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.Len(t, carts.View(7).Lines, 2)
}

func TestGetSaleByID_NotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	saleRepo := new(MockSaleRepository)
	saleRepo.On("GetSaleByID", int64(999)).Return(nil, repositories.ErrNotFound)

	svc := NewSaleService(saleRepo, new(MockProductRepository), NewCartService(new(MockProductRepository)), db)

	sale, err := svc.GetSaleByID(999)
	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestGetSaleDetail_RequiresExistingSale(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	saleRepo := new(MockSaleRepository)
	saleRepo.On("GetSaleByID", int64(999)).Return(nil, repositories.ErrNotFound)

	svc := NewSaleService(saleRepo, new(MockProductRepository), NewCartService(new(MockProductRepository)), db)

	rows, err := svc.GetSaleDetail(999)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrSaleNotFound)
	saleRepo.AssertNotCalled(t, "GetSaleDetailRows", mock.Anything)
}

func TestGetSalesOfToday_UsesLocalDay(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	saleRepo := new(MockSaleRepository)
	saleRepo.On("GetSalesOfDay", "2024-03-15").Return([]models.DailySaleRow{
		{SaleID: 1, Total: 22.5, EmployeeName: "Ana"},
	}, nil)

	svc := NewSaleService(saleRepo, new(MockProductRepository), NewCartService(new(MockProductRepository)), db)
	svc.(*saleService).now = fixedClock

	sales, err := svc.GetSalesOfToday()
	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	saleRepo.AssertExpectations(t)
}

func TestCheckout_PropagatesUnknownDecrementError(t *testing.T) {
	svc, _, saleRepo, productRepo, dbMock := checkoutFixture(t)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	someErr := errors.New("connection reset")
	saleRepo.On("CreateSale", mock.Anything, mock.Anything).Return(int64(100), nil)
	saleRepo.On("CreateSaleDetail", mock.Anything, mock.Anything).Return(int64(1), nil)
	productRepo.On("DecrementStock", mock.Anything, int64(1), 2).Return(someErr)

	sale, err := svc.Checkout(7)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, someErr)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
