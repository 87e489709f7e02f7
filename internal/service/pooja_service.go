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

type CreatePoojaRequest struct {
	TempleID        string          `json:"temple_id" binding:"required,uuid"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DurationMinutes int             `json:"duration_minutes" binding:"omitempty,gt=0"`
}

type UpdatePoojaRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes int              `json:"duration_minutes" binding:"omitempty,gt=0"`
	IsActive        *bool            `json:"is_active"`
}

type CreateBookingRequest struct {
	DevoteeID   string    `json:"devotee_id" binding:"omitempty,uuid"`
	DevoteeName string    `json:"devotee_name" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type PoojaService interface {
	Create(ctx context.Context, req CreatePoojaRequest) (*model.Pooja, error)
	Get(ctx context.Context, id string) (*model.Pooja, error)
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Pooja, int64, error)
	Update(ctx context.Context, id string, req UpdatePoojaRequest) (*model.Pooja, error)

	// Book reserves a slot for an active pooja; the booking amount is the
	// pooja's current price.
	Book(ctx context.Context, poojaID string, req CreateBookingRequest) (*model.PoojaBooking, error)
	BookingsForDate(ctx context.Context, templeID string, day time.Time) ([]model.PoojaBooking, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

type poojaService struct {
	db *gorm.DB
}

func NewPoojaService(db *gorm.DB) PoojaService {
	return &poojaService{db: db}
}

func (s *poojaService) Create(ctx context.Context, req CreatePoojaRequest) (*model.Pooja, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	if req.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("pooja price cannot be negative")
	}

	pooja := model.Pooja{
		TempleID:        templeID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if pooja.DurationMinutes == 0 {
		pooja.DurationMinutes = 30
	}
	if err := s.db.WithContext(ctx).Create(&pooja).Error; err != nil {
		return nil, fmt.Errorf("failed to create pooja: %w", err)
	}
	return &pooja, nil
}

func (s *poojaService) Get(ctx context.Context, id string) (*model.Pooja, error) {
	poojaID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid pooja id: %w", err)
	}

	var pooja model.Pooja
	if err := s.db.WithContext(ctx).First(&pooja, "id = ?", poojaID).Error; err != nil {
		return nil, fmt.Errorf("pooja not found: %w", err)
	}
	return &pooja, nil
}

func (s *poojaService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Pooja, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var poojas []model.Pooja
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.Pooja{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&poojas).Error; err != nil {
		return nil, 0, err
	}
	return poojas, total, nil
}

func (s *poojaService) Update(ctx context.Context, id string, req UpdatePoojaRequest) (*model.Pooja, error) {
	pooja, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		pooja.Name = req.Name
	}
	if req.Description != "" {
		pooja.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("pooja price cannot be negative")
		}
		pooja.Price = *req.Price
	}
	if req.DurationMinutes > 0 {
		pooja.DurationMinutes = req.DurationMinutes
	}
	if req.IsActive != nil {
		pooja.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(pooja).Error; err != nil {
		return nil, fmt.Errorf("failed to update pooja: %w", err)
	}
	return pooja, nil
}

func (s *poojaService) Book(ctx context.Context, poojaID string, req CreateBookingRequest) (*model.PoojaBooking, error) {
	pooja, err := s.Get(ctx, poojaID)
	if err != nil {
		return nil, err
	}
	if !pooja.IsActive {
		return nil, fmt.Errorf("pooja '%s' is not currently offered", pooja.Name)
	}

	var devoteeID *uuid.UUID
	if req.DevoteeID != "" {
		parsed, parseErr := uuid.Parse(req.DevoteeID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid devotee id: %w", parseErr)
		}
		devoteeID = &parsed
	}

	booking := model.PoojaBooking{
		PoojaID:     pooja.ID,
		TempleID:    pooja.TempleID,
		DevoteeID:   devoteeID,
		DevoteeName: req.DevoteeName,
		ScheduledAt: req.ScheduledAt,
		Status:      model.BookingStatusScheduled,
		Amount:      pooja.Price,
	}
	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

func (s *poojaService) BookingsForDate(ctx context.Context, templeID string, day time.Time) ([]model.PoojaBooking, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var bookings []model.PoojaBooking
	err = s.db.WithContext(ctx).
		Where("temple_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tid, start, end).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *poojaService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking id: %w", err)
	}

	var booking model.PoojaBooking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return fmt.Errorf("booking not found: %w", err)
	}

	return s.db.WithContext(ctx).Model(&booking).Update("status", model.BookingStatusCancelled).Error
}
