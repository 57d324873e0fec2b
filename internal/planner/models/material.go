package models

// ============================================================
// Material Model
// ============================================================

type Material struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	CreatedAt   string `json:"created_at"`
}
