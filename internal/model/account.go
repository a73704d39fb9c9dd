package model

import "time"

// Account types accepted for bookkeeping accounts.
const (
	AccountBrokerage  = "BROKERAGE"
	AccountBank       = "BANK"
	AccountCrypto     = "CRYPTO"
	AccountRetirement = "RETIREMENT"
)

// Account is a brokerage or bank account the owner tracks for reference.
// AccountNumber holds the Fernet token when stored and the masked value when returned.
type Account struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	AccountType   string    `json:"accountType"`
	Institution   string    `json:"institution"`
	Currency      string    `json:"currency"`
	IsDefault     bool      `json:"isDefault"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
