package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// TransactionService reads the append-only transaction log.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// ListTransactions returns the owner's transactions, newest first, narrowed by filter.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	txs, err := s.transactionRepo.ListTransactions(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	return txs, nil
}
