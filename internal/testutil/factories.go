package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults (no cash)
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithID("owner-1").
//	    WithCash("1000").
//	    Build(t, db)
type UserBuilder struct {
	ID          string
	CashBalance decimal.Decimal
	RealizedPnL decimal.Decimal
}

// NewUser creates a UserBuilder with a random id and zero balances.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:          MakeID(),
		CashBalance: decimal.Zero,
		RealizedPnL: decimal.Zero,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithCash sets the cash balance from a decimal string.
func (b *UserBuilder) WithCash(cash string) *UserBuilder {
	b.CashBalance = decimal.RequireFromString(cash)
	return b
}

// WithRealizedPnL sets the realized P&L from a decimal string.
func (b *UserBuilder) WithRealizedPnL(pnl string) *UserBuilder {
	b.RealizedPnL = decimal.RequireFromString(pnl)
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO users (id, cash_balance, realized_pnl, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.CashBalance.String(), b.RealizedPnL.String(),
		repository.FormatTimestamp(now), repository.FormatTimestamp(now))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:          b.ID,
		CashBalance: b.CashBalance,
		RealizedPnL: b.RealizedPnL,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	holding := testutil.NewHolding(user.ID).
//	    WithSymbol("AAPL").
//	    WithQuantity(10).
//	    WithAveragePrice("150").
//	    Build(t, db)
type HoldingBuilder struct {
	ID           string
	UserID       string
	Symbol       string
	Quantity     int64
	AveragePrice decimal.Decimal
}

// NewHolding creates a HoldingBuilder for userID with sensible defaults.
// The user must already exist.
func NewHolding(userID string) *HoldingBuilder {
	return &HoldingBuilder{
		ID:           MakeID(),
		UserID:       userID,
		Symbol:       MakeSymbol("TST"),
		Quantity:     10,
		AveragePrice: decimal.NewFromInt(100),
	}
}

// WithSymbol sets the ticker.
func (b *HoldingBuilder) WithSymbol(symbol string) *HoldingBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets the unit count.
func (b *HoldingBuilder) WithQuantity(quantity int64) *HoldingBuilder {
	b.Quantity = quantity
	return b
}

// WithAveragePrice sets the average cost per unit from a decimal string.
func (b *HoldingBuilder) WithAveragePrice(price string) *HoldingBuilder {
	b.AveragePrice = decimal.RequireFromString(price)
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO holding (id, user_id, symbol, quantity, average_price, version, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Symbol, b.Quantity, b.AveragePrice.String(), repository.FormatTimestamp(now))
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:           b.ID,
		UserID:       b.UserID,
		Symbol:       b.Symbol,
		Quantity:     b.Quantity,
		AveragePrice: b.AveragePrice,
		Version:      1,
		UpdatedAt:    now,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(user.ID).
//	    WithType(model.TransactionSell).
//	    WithTimestamp(time.Now().Add(-time.Hour)).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	UserID    string
	Symbol    string
	Type      string
	Quantity  int64
	Price     decimal.Decimal
	Timestamp time.Time
}

// NewTransaction creates a BUY TransactionBuilder for userID timestamped now.
func NewTransaction(userID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		UserID:    userID,
		Symbol:    "AAPL",
		Type:      model.TransactionBuy,
		Quantity:  1,
		Price:     decimal.NewFromInt(100),
		Timestamp: time.Now().UTC(),
	}
}

// WithSymbol sets the ticker.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithQuantity sets the unit count.
func (b *TransactionBuilder) WithQuantity(quantity int64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the unit price from a decimal string.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// WithTimestamp sets when the transaction happened.
func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	b.Timestamp = ts
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, user_id, symbol, type, quantity, price, fee, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, NULL, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Symbol, b.Type, b.Quantity, b.Price.String(), repository.FormatTimestamp(b.Timestamp))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		UserID:    b.UserID,
		Symbol:    b.Symbol,
		Type:      b.Type,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Timestamp: b.Timestamp,
	}
}

// SnapshotBuilder provides a fluent interface for creating test snapshots.
type SnapshotBuilder struct {
	ID             string
	UserID         string
	Date           time.Time
	TotalValue     decimal.Decimal
	InvestedAmount decimal.Decimal
	CashBalance    decimal.Decimal
}

// NewSnapshot creates a SnapshotBuilder for userID dated today.
func NewSnapshot(userID string) *SnapshotBuilder {
	return &SnapshotBuilder{
		ID:             MakeID(),
		UserID:         userID,
		Date:           time.Now(),
		TotalValue:     decimal.NewFromInt(1000),
		InvestedAmount: decimal.NewFromInt(900),
		CashBalance:    decimal.NewFromInt(100),
	}
}

// WithDate sets the calendar date.
func (b *SnapshotBuilder) WithDate(date time.Time) *SnapshotBuilder {
	b.Date = date
	return b
}

// WithTotalValue sets the holdings value from a decimal string.
func (b *SnapshotBuilder) WithTotalValue(value string) *SnapshotBuilder {
	b.TotalValue = decimal.RequireFromString(value)
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.PortfolioSnapshot {
	t.Helper()

	s := model.PortfolioSnapshot{
		ID:             b.ID,
		UserID:         b.UserID,
		Date:           b.Date,
		TotalValue:     b.TotalValue,
		InvestedAmount: b.InvestedAmount,
		CashBalance:    b.CashBalance,
		UnrealizedPnL:  b.TotalValue.Sub(b.InvestedAmount),
		RealizedPnL:    decimal.Zero,
	}

	query := `
		INSERT INTO portfolio_snapshot
			(id, user_id, date, total_value, invested_amount, cash_balance, unrealized_pnl, realized_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, s.ID, s.UserID, repository.FormatDate(s.Date), s.TotalValue.String(),
		s.InvestedAmount.String(), s.CashBalance.String(), s.UnrealizedPnL.String(), s.RealizedPnL.String())
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	return s
}

// AccountBuilder provides a fluent interface for creating test accounts.
// AccountNumber is stored as given, so pass a token from secret.Box when the
// test reads it back through AccountService.
type AccountBuilder struct {
	ID            string
	UserID        string
	Name          string
	AccountType   string
	Currency      string
	IsDefault     bool
	AccountNumber string
}

// NewAccount creates a brokerage AccountBuilder for userID.
func NewAccount(userID string) *AccountBuilder {
	return &AccountBuilder{
		ID:          MakeID(),
		UserID:      userID,
		Name:        MakeAccountName("Test Account"),
		AccountType: model.AccountBrokerage,
		Currency:    "INR",
	}
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// Default marks the account as the owner's default.
func (b *AccountBuilder) Default() *AccountBuilder {
	b.IsDefault = true
	return b
}

// WithAccountNumber sets the stored account number column.
func (b *AccountBuilder) WithAccountNumber(token string) *AccountBuilder {
	b.AccountNumber = token
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	a := model.Account{
		ID:            b.ID,
		UserID:        b.UserID,
		Name:          b.Name,
		AccountType:   b.AccountType,
		Currency:      b.Currency,
		IsDefault:     b.IsDefault,
		AccountNumber: b.AccountNumber,
		CreatedAt:     time.Now().UTC(),
	}
	if err := repository.NewAccountRepository(db).InsertAccount(t.Context(), a); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return a
}

// GoalBuilder provides a fluent interface for creating test goals.
type GoalBuilder struct {
	ID            string
	UserID        string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Status        string
}

// NewGoal creates a GoalBuilder for userID due in one year.
func NewGoal(userID string) *GoalBuilder {
	return &GoalBuilder{
		ID:            MakeID(),
		UserID:        userID,
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(2500),
		Deadline:      time.Now().AddDate(1, 0, 0),
		Status:        "on-track",
	}
}

// WithAmounts sets the target and current amounts from decimal strings.
func (b *GoalBuilder) WithAmounts(target, current string) *GoalBuilder {
	b.TargetAmount = decimal.RequireFromString(target)
	b.CurrentAmount = decimal.RequireFromString(current)
	return b
}

// Build creates the goal in the database and returns it.
func (b *GoalBuilder) Build(t *testing.T, db *sql.DB) model.Goal {
	t.Helper()

	g := model.Goal{
		ID:                  b.ID,
		UserID:              b.UserID,
		Name:                b.Name,
		TargetAmount:        b.TargetAmount,
		CurrentAmount:       b.CurrentAmount,
		Deadline:            b.Deadline,
		MonthlyContribution: decimal.Zero,
		Status:              b.Status,
	}
	if err := repository.NewGoalRepository(db).InsertGoal(t.Context(), g); err != nil {
		t.Fatalf("Failed to create test goal: %v", err)
	}
	return g
}

// SipBuilder provides a fluent interface for creating test SIPs.
type SipBuilder struct {
	ID       string
	UserID   string
	Fund     string
	Amount   decimal.Decimal
	NextDate time.Time
}

// NewSip creates a monthly, active SipBuilder for userID.
func NewSip(userID string) *SipBuilder {
	return &SipBuilder{
		ID:       MakeID(),
		UserID:   userID,
		Fund:     MakeFundName("Index Fund"),
		Amount:   decimal.NewFromInt(500),
		NextDate: time.Now().AddDate(0, 1, 0),
	}
}

// WithFund sets the fund name.
func (b *SipBuilder) WithFund(fund string) *SipBuilder {
	b.Fund = fund
	return b
}

// Build creates the SIP in the database and returns it.
func (b *SipBuilder) Build(t *testing.T, db *sql.DB) model.Sip {
	t.Helper()

	s := model.Sip{
		ID:        b.ID,
		UserID:    b.UserID,
		Fund:      b.Fund,
		Amount:    b.Amount,
		Frequency: "Monthly",
		NextDate:  b.NextDate,
		Status:    "active",
	}
	if err := repository.NewSipRepository(db).InsertSip(t.Context(), s); err != nil {
		t.Fatalf("Failed to create test sip: %v", err)
	}
	return s
}
