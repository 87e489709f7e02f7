package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateDonationRequest struct {
	TempleID    string          `json:"temple_id" binding:"required,uuid"`
	DevoteeID   string          `json:"devotee_id" binding:"omitempty,uuid"`
	DonorName   string          `json:"donor_name" binding:"required"`
	Purpose     string          `json:"purpose"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode string          `json:"payment_mode" binding:"required"`
	ReceiptNo   string          `json:"receipt_no" binding:"required"`
	DonatedAt   *time.Time      `json:"donated_at"`
}

// DonationSummary aggregates a temple's donations over a date range.
type DonationSummary struct {
	TempleID    string          `json:"temple_id"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

type DonationService interface {
	Create(ctx context.Context, req CreateDonationRequest) (*model.Donation, error)
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Donation, int64, error)
	Summary(ctx context.Context, templeID string, from, to time.Time) (*DonationSummary, error)
}

type donationService struct {
	db  *gorm.DB
	hub *websocket.Hub
}

func NewDonationService(db *gorm.DB, hub *websocket.Hub) DonationService {
	return &donationService{db: db, hub: hub}
}

func (s *donationService) Create(ctx context.Context, req CreateDonationRequest) (*model.Donation, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("donation amount must be positive")
	}

	var devoteeID *uuid.UUID
	if req.DevoteeID != "" {
		parsed, parseErr := uuid.Parse(req.DevoteeID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid devotee id: %w", parseErr)
		}
		devoteeID = &parsed
	}

	donatedAt := time.Now()
	if req.DonatedAt != nil {
		donatedAt = *req.DonatedAt
	}

	donation := model.Donation{
		TempleID:    templeID,
		DevoteeID:   devoteeID,
		DonorName:   req.DonorName,
		Purpose:     req.Purpose,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		ReceiptNo:   req.ReceiptNo,
		DonatedAt:   donatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish("donation.created", donation)
	}
	return &donation, nil
}

func (s *donationService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Donation, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var donations []model.Donation
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("donated_at DESC").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// Summary computes the sum and count of a temple's donations in [from, to].
func (s *donationService) Summary(ctx context.Context, templeID string, from, to time.Time) (*DonationSummary, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&model.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("temple_id = ? AND donated_at >= ? AND donated_at <= ?", tid, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute donation summary: %w", err)
	}

	return &DonationSummary{
		TempleID:    templeID,
		From:        from,
		To:          to,
		TotalAmount: row.Total,
		Count:       row.Count,
	}, nil
}
