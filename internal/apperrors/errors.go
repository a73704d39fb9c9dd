package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that no user record exists for the owner id.
	ErrUserNotFound = errors.New("user not found")

	// ErrHoldingNotFound indicates that the owner has no position in the symbol.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates no snapshot exists for the owner and date combination.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrGoalNotFound indicates that a goal with the given ID does not exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrSipNotFound indicates that a SIP with the given ID does not exist.
	ErrSipNotFound = errors.New("sip not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientFunds indicates that the cash balance does not cover a buy or withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotOwned indicates a sell (or dividend) for a symbol the owner does not hold.
	ErrNotOwned = errors.New("you do not own this stock")

	// ErrInsufficientQuantity indicates a sell for more units than the holding contains.
	ErrInsufficientQuantity = errors.New("insufficient quantity to sell")

	// ErrInvalidAmount indicates a non-positive deposit, withdrawal or dividend amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidQuantity indicates a non-positive trade quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidTradeType indicates a trade side other than BUY or SELL.
	ErrInvalidTradeType = errors.New("trade type must be BUY or SELL")

	// ErrPriceUnavailable indicates that every price provider failed for a symbol.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrVersionConflict indicates that a row changed between read and write.
	ErrVersionConflict = errors.New("concurrent modification detected")

	// ErrForbidden indicates that the record belongs to another owner.
	ErrForbidden = errors.New("not authorized to access this resource")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrEncryptionNotConfigured indicates that a secret field was supplied without ENCRYPTION_KEY.
	ErrEncryptionNotConfigured = errors.New("encryption key is not configured")

	// Validation errors for required fields
	ErrInvalidSymbol  = errors.New("symbol is required")
	ErrInvalidOwnerID = errors.New("owner ID is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrievePortfolio    = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve snapshots")
	ErrFailedToCaptureSnapshots     = errors.New("failed to capture snapshots")
	ErrFailedToExecuteTrade         = errors.New("failed to execute trade")
	ErrFailedToUpdateFunds          = errors.New("failed to update funds")
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveGoals        = errors.New("failed to retrieve goals")
	ErrFailedToRetrieveSips         = errors.New("failed to retrieve sips")
	ErrFailedToRetrieveQuote        = errors.New("failed to retrieve quote")
)
