package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSchemeRequest struct {
	TempleID    string          `json:"temple_id" binding:"required,uuid"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Frequency   string          `json:"frequency" binding:"required,oneof=monthly quarterly yearly one-time"`
}

type PayContributionRequest struct {
	DevoteeID string           `json:"devotee_id" binding:"omitempty,uuid"`
	PayerName string           `json:"payer_name" binding:"required"`
	Amount    *decimal.Decimal `json:"amount"` // defaults to the scheme amount
	PaidAt    *time.Time       `json:"paid_at"`
}

// SchemeTotal aggregates collections under one scheme.
type SchemeTotal struct {
	SchemeID    string          `json:"scheme_id"`
	SchemeName  string          `json:"scheme_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

type ContributionService interface {
	CreateScheme(ctx context.Context, req CreateSchemeRequest) (*model.ContributionScheme, error)
	GetScheme(ctx context.Context, id string) (*model.ContributionScheme, error)
	ListSchemes(ctx context.Context, templeID string, page, limit int) ([]model.ContributionScheme, int64, error)
	CloseScheme(ctx context.Context, id string) error

	Pay(ctx context.Context, schemeID string, req PayContributionRequest) (*model.Contribution, error)
	ListPayments(ctx context.Context, schemeID string, page, limit int) ([]model.Contribution, int64, error)
	Total(ctx context.Context, schemeID string) (*SchemeTotal, error)
}

type contributionService struct {
	db *gorm.DB
}

func NewContributionService(db *gorm.DB) ContributionService {
	return &contributionService{db: db}
}

func (s *contributionService) CreateScheme(ctx context.Context, req CreateSchemeRequest) (*model.ContributionScheme, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("scheme amount must be positive")
	}

	scheme := model.ContributionScheme{
		TempleID:    templeID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&scheme).Error; err != nil {
		return nil, fmt.Errorf("failed to create scheme: %w", err)
	}
	return &scheme, nil
}

func (s *contributionService) GetScheme(ctx context.Context, id string) (*model.ContributionScheme, error) {
	schemeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid scheme id: %w", err)
	}

	var scheme model.ContributionScheme
	if err := s.db.WithContext(ctx).First(&scheme, "id = ?", schemeID).Error; err != nil {
		return nil, fmt.Errorf("scheme not found: %w", err)
	}
	return &scheme, nil
}

func (s *contributionService) ListSchemes(ctx context.Context, templeID string, page, limit int) ([]model.ContributionScheme, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var schemes []model.ContributionScheme
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.ContributionScheme{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&schemes).Error; err != nil {
		return nil, 0, err
	}
	return schemes, total, nil
}

func (s *contributionService) CloseScheme(ctx context.Context, id string) error {
	scheme, err := s.GetScheme(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(scheme).Update("is_active", false).Error
}

func (s *contributionService) Pay(ctx context.Context, schemeID string, req PayContributionRequest) (*model.Contribution, error) {
	scheme, err := s.GetScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	if !scheme.IsActive {
		return nil, fmt.Errorf("scheme '%s' is closed", scheme.Name)
	}

	amount := scheme.Amount
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("contribution amount must be positive")
		}
		amount = *req.Amount
	}

	var devoteeID *uuid.UUID
	if req.DevoteeID != "" {
		parsed, parseErr := uuid.Parse(req.DevoteeID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid devotee id: %w", parseErr)
		}
		devoteeID = &parsed
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	contribution := model.Contribution{
		SchemeID:  scheme.ID,
		TempleID:  scheme.TempleID,
		DevoteeID: devoteeID,
		PayerName: req.PayerName,
		Amount:    amount,
		PaidAt:    paidAt,
	}
	if err := s.db.WithContext(ctx).Create(&contribution).Error; err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}
	return &contribution, nil
}

func (s *contributionService) ListPayments(ctx context.Context, schemeID string, page, limit int) ([]model.Contribution, int64, error) {
	sid, err := uuid.Parse(schemeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid scheme id: %w", err)
	}

	var contributions []model.Contribution
	var total int64

	db := s.db.WithContext(ctx).Where("scheme_id = ?", sid)
	if err := db.Model(&model.Contribution{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("paid_at DESC").Offset(offset).Limit(limit).Find(&contributions).Error; err != nil {
		return nil, 0, err
	}
	return contributions, total, nil
}

func (s *contributionService) Total(ctx context.Context, schemeID string) (*SchemeTotal, error) {
	scheme, err := s.GetScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&model.Contribution{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("scheme_id = ?", scheme.ID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute scheme total: %w", err)
	}

	return &SchemeTotal{
		SchemeID:    scheme.ID.String(),
		SchemeName:  scheme.Name,
		TotalAmount: row.Total,
		Count:       row.Count,
	}, nil
}
