package models

// Product represents an item of the shop catalog. Barcode is optional but
// unique when present; it is what the scan gun feeds into the cart.
type Product struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name" binding:"required"`
	Brand    string  `json:"brand" db:"brand" binding:"required"`
	Price    float64 `json:"price" db:"price"`
	Quantity int     `json:"quantity" db:"quantity"`
	Category string  `json:"category" db:"category" binding:"required"`
	Barcode  *string `json:"barcode,omitempty" db:"barcode"`
}
