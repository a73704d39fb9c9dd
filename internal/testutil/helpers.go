package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/repository"
	"github.com/ndewijer/investment-tracker-backend/internal/secret"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// NewTestTradeService builds a TradeService over db. A nil trigger discards snapshot requests.
func NewTestTradeService(t *testing.T, db *sql.DB, prices service.PriceSource, trigger service.SnapshotTrigger) *service.TradeService {
	t.Helper()

	if trigger == nil {
		trigger = service.NoopTrigger{}
	}
	return service.NewTradeService(
		db,
		repository.NewUserRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewTransactionRepository(db),
		prices,
		trigger,
		zerolog.Nop(),
	)
}

// NewTestFundsService builds a FundsService over db. A nil trigger discards snapshot requests.
func NewTestFundsService(t *testing.T, db *sql.DB, trigger service.SnapshotTrigger) *service.FundsService {
	t.Helper()

	if trigger == nil {
		trigger = service.NoopTrigger{}
	}
	return service.NewFundsService(
		db,
		repository.NewUserRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewTransactionRepository(db),
		trigger,
		zerolog.Nop(),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, prices service.PriceSource) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewUserRepository(db),
		repository.NewHoldingRepository(db),
		prices,
		zerolog.Nop(),
	)
}

// NewTestSnapshotService builds a SnapshotService valuing through a PortfolioService
// over the same db. clock fixes "today"; nil uses time.Now.
func NewTestSnapshotService(t *testing.T, db *sql.DB, prices service.PriceSource, clock func() time.Time) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewUserRepository(db),
		repository.NewSnapshotRepository(db),
		NewTestPortfolioService(t, db, prices),
		zerolog.Nop(),
		clock,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(repository.NewTransactionRepository(db))
}

// NewTestAccountService builds an AccountService. A nil box disables account numbers.
func NewTestAccountService(t *testing.T, db *sql.DB, box *secret.Box) *service.AccountService {
	t.Helper()

	return service.NewAccountService(db, repository.NewAccountRepository(db), box, zerolog.Nop())
}

func NewTestGoalService(t *testing.T, db *sql.DB) *service.GoalService {
	t.Helper()

	return service.NewGoalService(repository.NewGoalRepository(db))
}

func NewTestSipService(t *testing.T, db *sql.DB) *service.SipService {
	t.Helper()

	return service.NewSipService(repository.NewSipRepository(db))
}

func NewTestMarketService(t *testing.T, prices service.PriceSource) *service.MarketService {
	t.Helper()

	return service.NewMarketService(prices, zerolog.Nop())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"price_cache": false})
}

// NewTestBox returns a secret.Box with a freshly generated key.
func NewTestBox(t *testing.T) *secret.Box {
	t.Helper()

	key, err := secret.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	box, err := secret.NewBox(key)
	if err != nil {
		t.Fatalf("Failed to create box: %v", err)
	}
	return box
}

// MakeID generates a unique UUID for testing.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Brokerage")
//	// Returns: "Brokerage ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Tech Fund")
//	// Returns: "Tech Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
