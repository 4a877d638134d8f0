package handlers

import (
	"errors"
	"net/http"

	"dulceria_pos_backend/internal/middleware"
	"dulceria_pos_backend/internal/services"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler holds the cart and sale services.
type CartHandler struct {
	cartService services.CartService
	saleService services.SaleService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs services.CartService, ss services.SaleService) *CartHandler {
	return &CartHandler{cartService: cs, saleService: ss}
}

// AddItemRequest is the payload for adding a product to the cart by id.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// ScanRequest is the payload for adding a product to the cart by barcode.
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// SetQuantityRequest is the payload for overriding a cart line's quantity.
// Quantity is a pointer so an explicit 0 (remove the line) can be told apart
// from a missing field.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// DiscountRequest is the payload for applying a cart-wide discount.
type DiscountRequest struct {
	Percentage float64 `json:"percentage"`
}

func (h *CartHandler) employeeID(c *gin.Context) (int64, bool) {
	id, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
	}
	return id, ok
}

// GetCart returns the authenticated employee's current cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cartService.View(employeeID))
}

// AddItem adds one unit of a product to the cart, merging with an existing
// line for the same product.
func (h *CartHandler) AddItem(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	view, err := h.cartService.AddProduct(employeeID, req.ProductID)
	if err != nil {
		h.respondCartError(c, err, "AddItem")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Scan adds one unit of the product matching the scanned barcode.
func (h *CartHandler) Scan(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	view, err := h.cartService.AddByBarcode(employeeID, req.Barcode)
	if err != nil {
		h.respondCartError(c, err, "Scan")
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetQuantity overrides the quantity of a cart line. A quantity of zero or
// less removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	productID, err := utils.StrToInt64(c.Param("productId"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID format.", err.Error()))
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	view, err := h.cartService.SetQuantity(employeeID, productID, *req.Quantity)
	if err != nil {
		h.respondCartError(c, err, "SetQuantity")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyDiscount applies a percentage discount to the whole cart. Values
// outside [0, 100] are clamped.
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	view, err := h.cartService.ApplyDiscount(employeeID, req.Percentage)
	if err != nil {
		h.respondCartError(c, err, "ApplyDiscount")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearCart empties the authenticated employee's cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}
	h.cartService.Clear(employeeID)
	c.JSON(http.StatusOK, h.cartService.View(employeeID))
}

// Checkout commits the current cart as a sale, decrementing stock for every
// line in a single transaction.
func (h *CartHandler) Checkout(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.Checkout(employeeID)
	if err != nil {
		utils.LogError(err, "Checkout: Error from saleService.Checkout")
		if errors.Is(err, services.ErrEmptyCart) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Cart is empty.", err.Error()))
		} else if errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to complete the sale.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *CartHandler) respondCartError(c *gin.Context, err error, op string) {
	if errors.Is(err, services.ErrProductNotInCatalog) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		return
	}
	utils.LogError(err, op+": Error from cartService")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Cart operation failed.", "Internal error"))
}
