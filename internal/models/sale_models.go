package models

// Sale is the persisted header of a finished checkout. Date has day
// granularity (YYYY-MM-DD); Total is the discounted amount the customer
// actually paid. Sales are immutable once written.
type Sale struct {
	ID           int64        `json:"id" db:"id"`
	Date         string       `json:"date" db:"date"`
	Total        float64      `json:"total" db:"total"`
	EmployeeID   int64        `json:"employee_id" db:"employee_id"`
	EmployeeName string       `json:"employee_name,omitempty"`
	Details      []SaleDetail `json:"details,omitempty"`
}

// SaleDetail is one line of a persisted sale. UnitPrice is the catalog price
// at the time of sale, without any discount applied; the discount only lives
// in the Sale header total.
type SaleDetail struct {
	ID        int64   `json:"id" db:"id"`
	SaleID    int64   `json:"sale_id" db:"sale_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}
