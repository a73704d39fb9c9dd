package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// Valuator produces the current valuation of an owner's portfolio.
type Valuator interface {
	GetPortfolio(ctx context.Context, ownerID string) (model.PortfolioView, error)
}

// SnapshotService persists one valuation per owner per calendar day.
type SnapshotService struct {
	userRepo     *repository.UserRepository
	snapshotRepo *repository.SnapshotRepository
	valuator     Valuator
	log          zerolog.Logger
	now          func() time.Time
}

// NewSnapshotService creates a new SnapshotService. A nil clock uses time.Now;
// "today" is the calendar date of the clock in its own location.
func NewSnapshotService(
	userRepo *repository.UserRepository,
	snapshotRepo *repository.SnapshotRepository,
	valuator Valuator,
	log zerolog.Logger,
	clock func() time.Time,
) *SnapshotService {
	if clock == nil {
		clock = time.Now
	}
	return &SnapshotService{
		userRepo:     userRepo,
		snapshotRepo: snapshotRepo,
		valuator:     valuator,
		log:          log,
		now:          clock,
	}
}

// CaptureSnapshots upserts today's snapshot for every user, one at a time.
// A user that fails is logged and listed in the report; the run continues
// with the next user. The error is only set when users cannot be listed.
func (s *SnapshotService) CaptureSnapshots(ctx context.Context) (model.CaptureReport, error) {
	today := s.today()
	report := model.CaptureReport{
		Date:   repository.FormatDate(today),
		Failed: []model.CaptureFailure{},
	}

	userIDs, err := s.userRepo.ListUserIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %w", apperrors.ErrFailedToCaptureSnapshots, err)
	}

	for _, id := range userIDs {
		if ctx.Err() != nil {
			report.Failed = append(report.Failed, model.CaptureFailure{UserID: id, Error: ctx.Err().Error()})
			continue
		}
		if _, err := s.capture(ctx, id, today); err != nil {
			s.log.Error().Err(err).Str("owner", id).Msg("snapshot capture failed")
			report.Failed = append(report.Failed, model.CaptureFailure{UserID: id, Error: err.Error()})
			continue
		}
		report.Captured++
	}

	s.log.Info().
		Str("date", report.Date).
		Int("captured", report.Captured).
		Int("failed", len(report.Failed)).
		Msg("snapshot capture finished")

	return report, nil
}

// CaptureForUser upserts today's snapshot for one existing user.
// Returns apperrors.ErrUserNotFound for an owner with no user record.
func (s *SnapshotService) CaptureForUser(ctx context.Context, ownerID string) (model.PortfolioSnapshot, error) {
	if _, err := s.userRepo.GetUser(ctx, ownerID); err != nil {
		return model.PortfolioSnapshot{}, err
	}
	return s.capture(ctx, ownerID, s.today())
}

// ListSnapshots returns the owner's snapshots, oldest first.
func (s *SnapshotService) ListSnapshots(ctx context.Context, ownerID string) ([]model.PortfolioSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshots(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSnapshots, err)
	}
	return snapshots, nil
}

func (s *SnapshotService) capture(ctx context.Context, ownerID string, day time.Time) (model.PortfolioSnapshot, error) {
	view, err := s.valuator.GetPortfolio(ctx, ownerID)
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}

	snap := model.PortfolioSnapshot{
		UserID:         ownerID,
		Date:           day,
		TotalValue:     view.NetWorth,
		InvestedAmount: view.TotalInvested,
		CashBalance:    view.CashBalance,
		UnrealizedPnL:  view.TotalPnL,
		RealizedPnL:    view.RealizedPnL,
	}
	if err := s.snapshotRepo.UpsertSnapshot(ctx, snap); err != nil {
		return model.PortfolioSnapshot{}, err
	}

	return s.snapshotRepo.GetSnapshot(ctx, ownerID, day)
}

func (s *SnapshotService) today() time.Time {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
