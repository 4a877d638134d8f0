package repositories

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newProductRepoFixture(t *testing.T) (ProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProductRepository(db), dbMock
}

func TestDecrementStock_Success(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	dbMock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
		WithArgs(3, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DecrementStock(repo.(*productRepository).db, 1, 3)
	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDecrementStock_InsufficientStock(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	// The guarded update touches no row, and the product does exist, so the
	// decrement must be rejected as an oversell.
	dbMock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
		WithArgs(10, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.DecrementStock(repo.(*productRepository).db, 1, 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	dbMock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
		WithArgs(1, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.DecrementStock(repo.(*productRepository).db, 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDecrementStock_ExistenceCheckErrorSurfaces(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	dbMock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
		WithArgs(1, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	err := repo.DecrementStock(repo.(*productRepository).db, 1, 1)
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDecrementStock_ProbeRunsOnTransaction(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewProductRepository(db)

	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE products SET quantity = quantity - \$1`).
		WithArgs(10, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	dbMock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)

	err = repo.DecrementStock(tx, 1, 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDelete_ReportsWhetherRowWasRemoved(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	dbMock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(repo.(*productRepository).db, 1)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(repo.(*productRepository).db, 2)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	dbMock.ExpectQuery(`SELECT id, name, brand, price, quantity, category, barcode FROM products WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "brand", "price", "quantity", "category", "barcode"}))

	product, err := repo.GetByID(42)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetInventory_OrderedByName(t *testing.T) {
	repo, dbMock := newProductRepoFixture(t)

	rows := sqlmock.NewRows([]string{"id", "name", "brand", "quantity", "price", "category"}).
		AddRow(int64(2), "Chicles", "Trident", 10, 12.0, "Dulces").
		AddRow(int64(1), "Chocolate", "Carlos V", 30, 18.5, "Dulces")
	dbMock.ExpectQuery(`SELECT id, name, brand, quantity, price, category FROM products ORDER BY name`).
		WillReturnRows(rows)

	inventory, err := repo.GetInventory()
	assert.NoError(t, err)
	assert.Len(t, inventory, 2)
	assert.Equal(t, "Chicles", inventory[0].Name)
}
