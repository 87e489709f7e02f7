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

type CreateSaleRequest struct {
	TempleID  string          `json:"temple_id" binding:"required,uuid"`
	ItemName  string          `json:"item_name" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	SoldAt    *time.Time      `json:"sold_at"`
}

// SaleSummary aggregates a temple's sales for one day.
type SaleSummary struct {
	TempleID    string          `json:"temple_id"`
	Date        string          `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

type SaleService interface {
	Create(ctx context.Context, req CreateSaleRequest) (*model.Sale, error)
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Sale, int64, error)
	DailySummary(ctx context.Context, templeID string, day time.Time) (*SaleSummary, error)
}

type saleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) SaleService {
	return &saleService{db: db}
}

func (s *saleService) Create(ctx context.Context, req CreateSaleRequest) (*model.Sale, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	if req.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	soldAt := time.Now()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	sale := model.Sale{
		TempleID:  templeID,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Total:     req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		SoldAt:    soldAt,
	}
	if err := s.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}
	return &sale, nil
}

func (s *saleService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Sale, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var sales []model.Sale
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.Sale{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("sold_at DESC").Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (s *saleService) DailySummary(ctx context.Context, templeID string, day time.Time) (*SaleSummary, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("temple_id = ? AND sold_at >= ? AND sold_at < ?", tid, start, end).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sale summary: %w", err)
	}

	return &SaleSummary{
		TempleID:    templeID,
		Date:        start.Format("2006-01-02"),
		TotalAmount: row.Total,
		Count:       row.Count,
	}, nil
}
