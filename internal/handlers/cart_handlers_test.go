package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
	"dulceria_pos_backend/internal/services"
)

// stubProductRepository serves a fixed catalog to the cart service.
type stubProductRepository struct {
	products map[int64]models.Product
}

func (s *stubProductRepository) Create(executor repositories.SQLExecutor, product *models.Product) (int64, error) {
	return 0, repositories.ErrDatabaseError
}

func (s *stubProductRepository) GetAll() ([]models.Product, error) {
	return nil, repositories.ErrDatabaseError
}

func (s *stubProductRepository) GetByID(id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubProductRepository) Update(executor repositories.SQLExecutor, product *models.Product) error {
	return repositories.ErrDatabaseError
}

func (s *stubProductRepository) Delete(executor repositories.SQLExecutor, id int64) (bool, error) {
	return false, repositories.ErrDatabaseError
}

func (s *stubProductRepository) DecrementStock(executor repositories.SQLExecutor, productID int64, quantity int) error {
	return repositories.ErrDatabaseError
}

func (s *stubProductRepository) GetInventory() ([]models.InventoryRow, error) {
	return nil, repositories.ErrDatabaseError
}

// newCartRouter wires a cart handler behind a stub identity middleware, with
// product 1 preloaded into employee 7's cart.
func newCartRouter(t *testing.T) (*gin.Engine, services.CartService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubProductRepository{products: map[int64]models.Product{
		1: {ID: 1, Name: "Chocolate", Brand: "Carlos V", Price: 10.0, Quantity: 50, Category: "Dulces"},
	}}
	carts := services.NewCartService(repo)
	_, err := carts.AddProduct(7, 1)
	assert.NoError(t, err)

	handler := NewCartHandler(carts, nil)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("employeeID", int64(7))
		c.Next()
	})
	engine.PATCH("/api/v1/cart/items/:productId", handler.SetQuantity)
	return engine, carts
}

func patchQuantity(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, "/api/v1/cart/items/1", bytes.NewBufferString(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	engine, carts := newCartRouter(t)

	w := patchQuantity(t, engine, `{"quantity": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var view services.CartView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0.0, view.Total)
	assert.Empty(t, carts.View(7).Lines)
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	engine, carts := newCartRouter(t)

	w := patchQuantity(t, engine, `{"quantity": -2}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, carts.View(7).Lines)
}

func TestSetQuantity_PositiveOverride(t *testing.T) {
	engine, carts := newCartRouter(t)

	w := patchQuantity(t, engine, `{"quantity": 5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	lines := carts.View(7).Lines
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestSetQuantity_MissingFieldRejected(t *testing.T) {
	engine, carts := newCartRouter(t)

	w := patchQuantity(t, engine, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The cart is untouched by the rejected request.
	assert.Len(t, carts.View(7).Lines, 1)
}
