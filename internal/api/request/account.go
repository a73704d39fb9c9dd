package request

// CreateAccountRequest is the body of POST /api/accounts.
type CreateAccountRequest struct {
	Name          string `json:"name"`
	AccountType   string `json:"accountType"`
	Institution   string `json:"institution"`
	Currency      string `json:"currency"`
	IsDefault     bool   `json:"isDefault"`
	AccountNumber string `json:"accountNumber"`
}
