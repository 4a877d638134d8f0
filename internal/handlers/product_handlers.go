package handlers

import (
	"errors"
	"net/http"

	"dulceria_pos_backend/internal/services"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// CreateProduct handles the creation of a new catalog product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		utils.LogError(err, "CreateProduct: Error from productService.CreateProduct")
		if errors.Is(err, services.ErrDuplicateBarcode) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A product with this barcode already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts handles fetching the full product catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts()
	if err != nil {
		utils.LogError(err, "GetProducts: Error from productService.GetProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch products.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID handles fetching a single product by its ID.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID format.", err.Error()))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else {
			utils.LogError(err, "GetProductByID: Error from productService.GetProductByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductByBarcode handles looking up a product by its scanned barcode.
func (h *ProductHandler) GetProductByBarcode(c *gin.Context) {
	barcode := c.Param("code")
	if barcode == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Barcode is required.", ""))
		return
	}

	product, err := h.productService.GetProductByBarcode(barcode)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No product registered with this barcode.", err.Error()))
		} else {
			utils.LogError(err, "GetProductByBarcode: Error from productService.GetProductByBarcode")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product's details.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID format.", err.Error()))
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(id, req)
	if err != nil {
		utils.LogError(err, "UpdateProduct: Error from productService.UpdateProduct")
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else if errors.Is(err, services.ErrDuplicateBarcode) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A product with this barcode already exists.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles removing a product from the catalog. The response
// reports whether a row was actually removed.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid product ID format.", err.Error()))
		return
	}

	deleted, err := h.productService.DeleteProduct(id)
	if err != nil {
		utils.LogError(err, "DeleteProduct: Error from productService.DeleteProduct")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete product.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
