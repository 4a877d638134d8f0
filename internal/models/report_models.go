package models

// DailySaleRow is one entry of the "sales of the day" listing.
type DailySaleRow struct {
	SaleID       int64   `json:"sale_id"`
	Total        float64 `json:"total"`
	EmployeeName string  `json:"employee_name"`
}

// EmployeeSalesRow aggregates today's revenue for one employee.
type EmployeeSalesRow struct {
	EmployeeName string  `json:"employee_name"`
	TotalSales   float64 `json:"total_sales"`
}

// InventoryRow is one product of the current stock snapshot, in catalog
// display order (by name).
type InventoryRow struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

// SaleDetailRow is one line of a single-sale breakdown with its computed
// subtotal (quantity * unit price).
type SaleDetailRow struct {
	ProductName string  `json:"product_name"`
	Brand       string  `json:"brand"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// DailySummary is the end-of-day cash-cut view: revenue per employee, the
// day's total and the stock snapshot, in one payload.
type DailySummary struct {
	SalesByEmployee []EmployeeSalesRow `json:"sales_by_employee"`
	TotalSales      float64            `json:"total_sales"`
	Inventory       []InventoryRow     `json:"inventory"`
}

// TableDocument is a generic tabular result set: one header row plus
// stringified data rows, ready to be serialized as delimited text.
type TableDocument struct {
	Header []string
	Rows   [][]string
}
