package services

import (
	"errors"
	"fmt"
	"sync"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
)

var (
	ErrProductNotInCatalog = errors.New("product not found in catalog")
	ErrEmptyCart           = errors.New("cart has no items")
)

// CartLine is one line of an open cart: a snapshot of the product at the time
// it was added, plus the quantity being sold.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart accumulates the line items of one checkout session. It is a pure
// in-memory value holder: nothing is persisted until checkout. Lines keep
// insertion order; adding a product that is already in the cart merges into
// the existing line instead of appending a second one.
type Cart struct {
	lines       []CartLine
	discountPct float64

	subtotal float64
	discount float64
	total    float64
}

// NewCart returns an empty cart with no discount applied.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) recalculate() {
	c.subtotal = 0
	for _, line := range c.lines {
		c.subtotal += line.Product.Price * float64(line.Quantity)
	}
	c.discount = c.subtotal * (c.discountPct / 100)
	c.total = c.subtotal - c.discount
	if c.total < 0 {
		c.total = 0
	}
}

// AddProduct adds one unit of the product to the cart. If a line for the same
// product id already exists its quantity is incremented instead.
func (c *Cart) AddProduct(product models.Product) {
	for i, line := range c.lines {
		if line.Product.ID == product.ID {
			c.lines[i].Quantity++
			c.recalculate()
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: 1})
	c.recalculate()
}

// SetQuantity sets the quantity of the line for productID. A quantity of zero
// or less removes the line entirely. Unknown product ids are ignored.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			if quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = quantity
			}
			c.recalculate()
			return
		}
	}
}

// ApplyDiscount sets the discount percentage, clamped to [0, 100].
func (c *Cart) ApplyDiscount(percentage float64) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	c.discountPct = percentage
	c.recalculate()
}

// Lines returns a copy of the cart's line items in insertion order.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Subtotal is the sum of price * quantity over all lines.
func (c *Cart) Subtotal() float64 { return c.subtotal }

// Discount is the amount subtracted from the subtotal.
func (c *Cart) Discount() float64 { return c.discount }

// DiscountPercentage is the currently applied discount percentage.
func (c *Cart) DiscountPercentage() float64 { return c.discountPct }

// Total is the discounted amount due. It is never negative.
func (c *Cart) Total() float64 { return c.total }

// CartView is the serializable state of an open cart.
type CartView struct {
	Lines              []CartLine `json:"lines"`
	Subtotal           float64    `json:"subtotal"`
	DiscountPercentage float64    `json:"discount_percentage"`
	Discount           float64    `json:"discount"`
	Total              float64    `json:"total"`
}

// --- CartService ---

// CartService keeps one open cart per logged-in employee. The shop runs a
// single terminal, but gin serves requests concurrently, so access to the
// cart map is serialized with a mutex.
type CartService interface {
	AddProduct(employeeID, productID int64) (*CartView, error)
	AddByBarcode(employeeID int64, barcode string) (*CartView, error)
	SetQuantity(employeeID, productID int64, quantity int) (*CartView, error)
	ApplyDiscount(employeeID int64, percentage float64) (*CartView, error)
	View(employeeID int64) *CartView
	Snapshot(employeeID int64) ([]CartLine, float64)
	Clear(employeeID int64)
}

type cartService struct {
	productRepo repositories.ProductRepository

	mu    sync.Mutex
	carts map[int64]*Cart
}

// NewCartService creates a new instance of CartService.
func NewCartService(productRepo repositories.ProductRepository) CartService {
	return &cartService{
		productRepo: productRepo,
		carts:       make(map[int64]*Cart),
	}
}

// cart returns the employee's open cart, creating it lazily. Callers must
// hold the mutex.
func (s *cartService) cart(employeeID int64) *Cart {
	c, ok := s.carts[employeeID]
	if !ok {
		c = NewCart()
		s.carts[employeeID] = c
	}
	return c
}

func view(c *Cart) *CartView {
	return &CartView{
		Lines:              c.Lines(),
		Subtotal:           c.Subtotal(),
		DiscountPercentage: c.DiscountPercentage(),
		Discount:           c.Discount(),
		Total:              c.Total(),
	}
}

func (s *cartService) AddProduct(employeeID, productID int64) (*CartView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrProductNotInCatalog, productID)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.AddProduct(*product)
	return view(c), nil
}

// AddByBarcode looks up the scanned barcode in the catalog and adds the
// product to the cart. A miss is a normal negative result, not a failure.
func (s *cartService) AddByBarcode(employeeID int64, barcode string) (*CartView, error) {
	product, err := s.productRepo.GetByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: barcode %s", ErrProductNotInCatalog, barcode)
		}
		return nil, fmt.Errorf("failed to fetch product by barcode %s: %w", barcode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.AddProduct(*product)
	return view(c), nil
}

func (s *cartService) SetQuantity(employeeID, productID int64, quantity int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.SetQuantity(productID, quantity)
	return view(c), nil
}

func (s *cartService) ApplyDiscount(employeeID int64, percentage float64) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.ApplyDiscount(percentage)
	return view(c), nil
}

func (s *cartService) View(employeeID int64) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.cart(employeeID))
}

// Snapshot returns the cart's lines and discounted total for checkout.
func (s *cartService) Snapshot(employeeID int64) ([]CartLine, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	return c.Lines(), c.Total()
}

// Clear discards the employee's open cart ("new order").
func (s *cartService) Clear(employeeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, employeeID)
}
