package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// Defaults for SIPs created without a frequency or status.
const (
	DefaultSipFrequency = "Monthly"
	DefaultSipStatus    = "active"
)

// SipService manages an owner's systematic investment plans.
type SipService struct {
	sipRepo *repository.SipRepository
}

// NewSipService creates a new SipService.
func NewSipService(sipRepo *repository.SipRepository) *SipService {
	return &SipService{sipRepo: sipRepo}
}

// ListSips returns the owner's SIPs ordered by next contribution date.
func (s *SipService) ListSips(ctx context.Context, ownerID string) ([]model.Sip, error) {
	sips, err := s.sipRepo.ListSips(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSips, err)
	}
	return sips, nil
}

// GetSip returns one of the owner's SIPs.
func (s *SipService) GetSip(ctx context.Context, ownerID, id string) (model.Sip, error) {
	return s.owned(ctx, ownerID, id)
}

// CreateSip stores a validated SIP request for the owner.
func (s *SipService) CreateSip(ctx context.Context, ownerID string, req request.CreateSipRequest) (model.Sip, error) {
	nextDate, err := validation.ParseDate(req.NextDate)
	if err != nil {
		return model.Sip{}, fmt.Errorf("invalid nextDate: %w", err)
	}

	sip := model.Sip{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Fund:      strings.TrimSpace(req.Fund),
		Amount:    req.Amount,
		Frequency: strings.TrimSpace(req.Frequency),
		NextDate:  nextDate,
		Status:    strings.ToLower(strings.TrimSpace(req.Status)),
	}
	if sip.Frequency == "" {
		sip.Frequency = DefaultSipFrequency
	}
	if sip.Status == "" {
		sip.Status = DefaultSipStatus
	}

	if err := s.sipRepo.InsertSip(ctx, sip); err != nil {
		return model.Sip{}, err
	}
	return sip, nil
}

// DeleteSip removes one of the owner's SIPs.
func (s *SipService) DeleteSip(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.sipRepo.DeleteSip(ctx, id)
}

func (s *SipService) owned(ctx context.Context, ownerID, id string) (model.Sip, error) {
	sip, err := s.sipRepo.GetSip(ctx, id)
	if err != nil {
		return model.Sip{}, err
	}
	if sip.UserID != ownerID {
		return model.Sip{}, apperrors.ErrForbidden
	}
	return sip, nil
}
