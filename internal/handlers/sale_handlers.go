package handlers

import (
	"errors"
	"net/http"

	"dulceria_pos_backend/internal/services"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// GetSalesOfToday lists the sales recorded today.
func (h *SaleHandler) GetSalesOfToday(c *gin.Context) {
	sales, err := h.saleService.GetSalesOfToday()
	if err != nil {
		utils.LogError(err, "GetSalesOfToday: Error from saleService.GetSalesOfToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch today's sales.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSaleByID returns a sale header together with its line items.
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid sale ID format.", err.Error()))
		return
	}

	sale, err := h.saleService.GetSaleByID(id)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error()))
		} else {
			utils.LogError(err, "GetSaleByID: Error from saleService.GetSaleByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sale.", "Internal error"))
		}
		return
	}

	details, err := h.saleService.GetSaleDetail(id)
	if err != nil {
		utils.LogError(err, "GetSaleByID: Error from saleService.GetSaleDetail")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sale details.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"sale": sale, "items": details})
}
