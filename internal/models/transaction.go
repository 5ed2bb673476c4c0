package models

// Transaction represents a financial transaction imported from the linking
// provider or a statement file.
type Transaction struct {
	ID           int64   `json:"id"`
	AccountID    string  `json:"account_id"`
	ExternalID   string  `json:"plaid_transaction_id"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"` // Format: YYYY-MM-DD
	Name         string  `json:"name"`
	MerchantName string  `json:"merchant_name,omitempty"`
	Category     string  `json:"category,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
