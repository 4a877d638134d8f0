package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/services"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs, now: time.Now}
}

// SalesByEmployee returns today's sales totals grouped per employee.
func (h *ReportHandler) SalesByEmployee(c *gin.Context) {
	rows, err := h.reportService.SalesByEmployeeToday()
	if err != nil {
		utils.LogError(err, "SalesByEmployee: Error from reportService.SalesByEmployeeToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build sales-by-employee report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TotalSales returns the grand total of today's sales.
func (h *ReportHandler) TotalSales(c *gin.Context) {
	total, err := h.reportService.TotalSalesToday()
	if err != nil {
		utils.LogError(err, "TotalSales: Error from reportService.TotalSalesToday")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute total sales.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// Inventory returns the current stock levels for the whole catalog.
func (h *ReportHandler) Inventory(c *gin.Context) {
	rows, err := h.reportService.InventorySnapshot()
	if err != nil {
		utils.LogError(err, "Inventory: Error from reportService.InventorySnapshot")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build inventory report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Summary returns the combined end-of-day report: per-employee totals, the
// grand total and the inventory snapshot.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.DailySummary()
	if err != nil {
		utils.LogError(err, "Summary: Error from reportService.DailySummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build daily summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportSales streams today's sales as a CSV attachment.
func (h *ReportHandler) ExportSales(c *gin.Context) {
	doc, err := h.reportService.SalesOfDayTable()
	if err != nil {
		utils.LogError(err, "ExportSales: Error from reportService.SalesOfDayTable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export sales.", "Internal error"))
		return
	}
	filename := fmt.Sprintf("ventas_del_dia_%s.csv", h.now().Format("02_01_2006"))
	h.writeCSV(c, filename, doc)
}

// ExportInventory streams the current inventory as a CSV attachment.
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	doc, err := h.reportService.InventoryTable()
	if err != nil {
		utils.LogError(err, "ExportInventory: Error from reportService.InventoryTable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export inventory.", "Internal error"))
		return
	}
	filename := fmt.Sprintf("inventario_actual_%s.csv", h.now().Format("02_01_2006"))
	h.writeCSV(c, filename, doc)
}

func (h *ReportHandler) writeCSV(c *gin.Context, filename string, doc *models.TableDocument) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(doc.Header); err != nil {
		utils.LogError(err, "writeCSV: Failed to write header row")
		return
	}
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			utils.LogError(err, "writeCSV: Failed to write data row")
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		utils.LogError(err, "writeCSV: Failed to flush CSV output")
	}
}
